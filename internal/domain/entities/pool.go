package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Pool is a merchant-owned escrow plus commission configuration, scoped by a
// per-merchant pool id. Its record address and escrow authority are derived,
// never key-controlled.
type Pool struct {
	ID                   uuid.UUID      `json:"id"`
	Address              common.Address `json:"address"`
	Merchant             common.Address `json:"merchant"`
	PoolID               string         `json:"poolId"`
	CommissionRate       uint16         `json:"commissionRate"`
	IsActive             bool           `json:"isActive"`
	TotalVolume          uint64         `json:"totalVolume"`
	TotalCommissionsPaid uint64         `json:"totalCommissionsPaid"`
	EscrowAuthority      common.Address `json:"escrowAuthority"`
	Relayer              common.Address `json:"relayer"`
	DeactivatedAt        null.Time      `json:"deactivatedAt,omitempty"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
}

// InitializePoolInput represents input for pool creation
type InitializePoolInput struct {
	PoolID         string `json:"poolId" binding:"required"`
	CommissionRate uint16 `json:"commissionRate"`
	InitialDeposit uint64 `json:"initialDeposit"`
	// Relayer is the wallet authorized to report sales. Defaults to the
	// merchant when omitted.
	Relayer string `json:"relayer,omitempty"`
}

// UpdateCommissionInput represents input for a commission rate change
type UpdateCommissionInput struct {
	CommissionRate uint16 `json:"commissionRate"`
}

// UpdateRelayerInput represents input for a relayer change
type UpdateRelayerInput struct {
	Relayer string `json:"relayer" binding:"required"`
}

// EscrowAmountInput represents input for escrow deposits and withdrawals
type EscrowAmountInput struct {
	Amount uint64 `json:"amount"`
}

// PoolResponse augments a pool with its vault address and live balance.
type PoolResponse struct {
	*Pool
	VaultAddress common.Address `json:"vaultAddress"`
	VaultBalance uint64         `json:"vaultBalance"`
}
