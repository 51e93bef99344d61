package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProcessSaleInput represents input for sale reporting. Amount validation
// happens in the usecase so the precondition order stays uniform.
type ProcessSaleInput struct {
	Amount uint64 `json:"amount"`
}

// SaleReceipt reports the effects of a processed sale.
type SaleReceipt struct {
	PoolAddress          common.Address `json:"poolAddress"`
	AffiliateWallet      common.Address `json:"affiliateWallet"`
	SaleAmount           uint64         `json:"saleAmount"`
	Commission           uint64         `json:"commission"`
	TotalVolume          uint64         `json:"totalVolume"`
	TotalCommissionsPaid uint64         `json:"totalCommissionsPaid"`
	AffiliateTotalEarned uint64         `json:"affiliateTotalEarned"`
	AffiliateSalesCount  uint64         `json:"affiliateSalesCount"`
	ProcessedAt          time.Time      `json:"processedAt"`
}
