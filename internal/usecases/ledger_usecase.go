package usecases

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/domain/repositories"
	"refpool.backend/pkg/derive"
)

// LedgerUsecase handles settlement-token ledger business logic. It owns the
// spend authorization: a transfer only debits an account when the presented
// authority matches the account owner, so holding a repository is never
// enough to move funds.
type LedgerUsecase struct {
	tokenRepo repositories.TokenAccountRepository
	uow       repositories.UnitOfWork
}

// NewLedgerUsecase creates a new ledger usecase
func NewLedgerUsecase(
	tokenRepo repositories.TokenAccountRepository,
	uow repositories.UnitOfWork,
) *LedgerUsecase {
	return &LedgerUsecase{
		tokenRepo: tokenRepo,
		uow:       uow,
	}
}

// EnsureAccount returns the ledger account for owner, creating an empty one
// when it does not exist yet.
func (u *LedgerUsecase) EnsureAccount(ctx context.Context, owner common.Address) (*entities.TokenAccount, error) {
	address := derive.TokenAccountAddress(owner)
	account, err := u.tokenRepo.GetByAddress(ctx, address)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	account = &entities.TokenAccount{
		Address: address,
		Owner:   owner,
	}
	if err := u.tokenRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Transfer moves amount from a ledger account to the destination owner's
// account, creating the destination when missing. An account that was never
// created holds nothing, so a missing source fails as insufficient funds
// rather than not found.
func (u *LedgerUsecase) Transfer(ctx context.Context, from common.Address, toOwner common.Address, amount uint64, auth derive.Authority) error {
	if amount == 0 {
		return domainerrors.ErrInvalidAmount
	}

	source, err := u.tokenRepo.GetByAddress(ctx, from)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.ErrInsufficientFunds
	}
	if err != nil {
		return err
	}
	if auth.Address() != source.Owner {
		return domainerrors.ErrUnauthorized
	}

	dest, err := u.EnsureAccount(ctx, toOwner)
	if err != nil {
		return err
	}

	if err := u.tokenRepo.Debit(ctx, from, amount); err != nil {
		return err
	}
	return u.tokenRepo.Credit(ctx, dest.Address, amount)
}

// Mint credits the faucet amount to a wallet's ledger account. The HTTP
// layer gates this behind the admin role and the mint secret.
func (u *LedgerUsecase) Mint(ctx context.Context, input *entities.MintInput) (*entities.BalanceResponse, error) {
	if !common.IsHexAddress(input.Wallet) {
		return nil, domainerrors.ErrInvalidWallet
	}
	if input.Amount == 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	wallet := common.HexToAddress(input.Wallet)

	var resp *entities.BalanceResponse
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		account, err := u.EnsureAccount(ctx, wallet)
		if err != nil {
			return err
		}
		if err := u.tokenRepo.Credit(ctx, account.Address, input.Amount); err != nil {
			return err
		}
		account, err = u.tokenRepo.GetByAddress(ctx, account.Address)
		if err != nil {
			return err
		}
		resp = &entities.BalanceResponse{
			Address: account.Address,
			Owner:   account.Owner,
			Balance: account.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Balance reports the ledger balance for a wallet. A wallet without an
// account reads as zero.
func (u *LedgerUsecase) Balance(ctx context.Context, owner common.Address) (*entities.BalanceResponse, error) {
	address := derive.TokenAccountAddress(owner)
	account, err := u.tokenRepo.GetByAddress(ctx, address)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return &entities.BalanceResponse{Address: address, Owner: owner}, nil
	}
	if err != nil {
		return nil, err
	}
	return &entities.BalanceResponse{
		Address: account.Address,
		Owner:   account.Owner,
		Balance: account.Balance,
	}, nil
}
