package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PoolEventType enumerates audit-log event kinds
type PoolEventType string

const (
	EventPoolInitialized   PoolEventType = "pool_initialized"
	EventCommissionUpdated PoolEventType = "commission_updated"
	EventRelayerUpdated    PoolEventType = "relayer_updated"
	EventPoolDeactivated   PoolEventType = "pool_deactivated"
	EventAffiliateAdded    PoolEventType = "affiliate_added"
	EventAffiliateRemoved  PoolEventType = "affiliate_removed"
	EventSaleProcessed     PoolEventType = "sale_processed"
	EventEscrowDeposited   PoolEventType = "escrow_deposited"
	EventEscrowWithdrawn   PoolEventType = "escrow_withdrawn"
)

// PoolEvent is an audit-log row written in the same transaction as the state
// change it describes.
type PoolEvent struct {
	ID              uuid.UUID      `json:"id"`
	PoolAddress     common.Address `json:"poolAddress"`
	EventType       PoolEventType  `json:"eventType"`
	AffiliateWallet null.String    `json:"affiliateWallet,omitempty"`
	Amount          null.Uint64    `json:"amount,omitempty"`
	Commission      null.Uint64    `json:"commission,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}
