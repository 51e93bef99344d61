package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/domain/entities"
)

// TokenAccountRepository defines settlement-token ledger operations. Credit
// and Debit are balance mutations only; authority checks live in the ledger
// usecase so no caller can bypass them by holding a repository.
type TokenAccountRepository interface {
	Create(ctx context.Context, account *entities.TokenAccount) error
	GetByAddress(ctx context.Context, address common.Address) (*entities.TokenAccount, error)
	// Credit adds amount to the account balance; fails with ErrOverflow on
	// uint64 wraparound and ErrNotFound when the account does not exist.
	Credit(ctx context.Context, address common.Address, amount uint64) error
	// Debit subtracts amount; fails with ErrInsufficientFunds when the
	// balance cannot cover it.
	Debit(ctx context.Context, address common.Address, amount uint64) error
}
