package entities

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// TokenAccount is a settlement-token balance on the internal ledger. Owner
// is the spending authority: wallets own their own accounts, escrow vaults
// are owned by a derived authority no key controls.
type TokenAccount struct {
	ID        uuid.UUID      `json:"id"`
	Address   common.Address `json:"address"`
	Owner     common.Address `json:"owner"`
	Balance   uint64         `json:"balance"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// MintInput represents input for the operational faucet
type MintInput struct {
	Wallet string `json:"wallet" binding:"required"`
	Amount uint64 `json:"amount"`
}

// BalanceResponse reports a ledger account balance
type BalanceResponse struct {
	Address common.Address `json:"address"`
	Owner   common.Address `json:"owner"`
	Balance uint64         `json:"balance"`
}
