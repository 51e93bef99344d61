package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Affiliate is a registered referrer attached to exactly one pool. The
// record exists for a single (pool, wallet) pair; removal deactivates it but
// preserves the accrued totals.
type Affiliate struct {
	ID            uuid.UUID      `json:"id"`
	Address       common.Address `json:"address"`
	PoolAddress   common.Address `json:"poolAddress"`
	Wallet        common.Address `json:"wallet"`
	RefID         string         `json:"refId"`
	IsActive      bool           `json:"isActive"`
	TotalEarned   uint64         `json:"totalEarned"`
	SalesCount    uint64         `json:"salesCount"`
	DeactivatedAt null.Time      `json:"deactivatedAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// AddAffiliateInput represents input for affiliate registration
type AddAffiliateInput struct {
	Wallet string `json:"wallet" binding:"required"`
	RefID  string `json:"refId" binding:"required"`
}
