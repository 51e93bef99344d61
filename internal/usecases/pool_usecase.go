package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/domain/repositories"
	"refpool.backend/pkg/derive"
	"refpool.backend/pkg/logger"
	"refpool.backend/pkg/metrics"
)

// PoolUsecase handles pool lifecycle and escrow business logic
type PoolUsecase struct {
	poolRepo  repositories.PoolRepository
	tokenRepo repositories.TokenAccountRepository
	eventRepo repositories.PoolEventRepository
	ledger    *LedgerUsecase
	uow       repositories.UnitOfWork
}

// NewPoolUsecase creates a new pool usecase
func NewPoolUsecase(
	poolRepo repositories.PoolRepository,
	tokenRepo repositories.TokenAccountRepository,
	eventRepo repositories.PoolEventRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *PoolUsecase {
	return &PoolUsecase{
		poolRepo:  poolRepo,
		tokenRepo: tokenRepo,
		eventRepo: eventRepo,
		ledger:    ledger,
		uow:       uow,
	}
}

func validateCommissionRate(rate uint16) error {
	if rate > MaxCommissionRateBps {
		return domainerrors.ErrInvalidCommissionRate
	}
	return nil
}

// InitializePool creates a pool record plus its escrow vault and funds the
// vault from the merchant's ledger account, all in one transaction. The
// initial deposit must be positive so a pool never starts unable to pay.
func (u *PoolUsecase) InitializePool(ctx context.Context, merchant common.Address, input *entities.InitializePoolInput) (*entities.PoolResponse, error) {
	if len(input.PoolID) == 0 || len(input.PoolID) > MaxPoolIDLen {
		return nil, domainerrors.ErrInvalidPoolID
	}
	if err := validateCommissionRate(input.CommissionRate); err != nil {
		return nil, err
	}
	if input.InitialDeposit == 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	relayer := merchant
	if input.Relayer != "" {
		if !common.IsHexAddress(input.Relayer) {
			return nil, domainerrors.ErrInvalidWallet
		}
		relayer = common.HexToAddress(input.Relayer)
	}

	poolAddress, err := derive.PoolAddress(merchant, input.PoolID)
	if err != nil {
		return nil, domainerrors.ErrInvalidPoolID
	}
	escrowAuthority := derive.EscrowAuthority(poolAddress)

	var resp *entities.PoolResponse
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		pool := &entities.Pool{
			Address:         poolAddress,
			Merchant:        merchant,
			PoolID:          input.PoolID,
			CommissionRate:  input.CommissionRate,
			IsActive:        true,
			EscrowAuthority: escrowAuthority,
			Relayer:         relayer,
		}
		if err := u.poolRepo.Create(ctx, pool); err != nil {
			return err
		}

		vault, err := u.ledger.EnsureAccount(ctx, escrowAuthority)
		if err != nil {
			return err
		}

		merchantAccount := derive.TokenAccountAddress(merchant)
		if err := u.ledger.Transfer(ctx, merchantAccount, escrowAuthority, input.InitialDeposit, derive.WalletAuthority(merchant)); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress: poolAddress,
			EventType:   entities.EventPoolInitialized,
			Amount:      null.Uint64From(input.InitialDeposit),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		resp = &entities.PoolResponse{
			Pool:         pool,
			VaultAddress: vault.Address,
			VaultBalance: input.InitialDeposit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "pool initialized",
		zap.String("pool", poolAddress.Hex()),
		zap.String("merchant", merchant.Hex()),
		zap.Uint64("initial_deposit", input.InitialDeposit))
	metrics.PoolsInitialized.Inc()
	return resp, nil
}

// UpdateCommission overwrites the pool's commission rate. Allowed on
// inactive pools; only future sales are affected.
func (u *PoolUsecase) UpdateCommission(ctx context.Context, caller, poolAddress common.Address, input *entities.UpdateCommissionInput) (*entities.Pool, error) {
	if err := validateCommissionRate(input.CommissionRate); err != nil {
		return nil, err
	}

	var updated *entities.Pool
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}

		pool.CommissionRate = input.CommissionRate
		if err := u.poolRepo.Update(ctx, pool); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress: poolAddress,
			EventType:   entities.EventCommissionUpdated,
			Amount:      null.Uint64From(uint64(input.CommissionRate)),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		updated = pool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateRelayer changes the wallet allowed to report sales on the pool.
func (u *PoolUsecase) UpdateRelayer(ctx context.Context, caller, poolAddress common.Address, input *entities.UpdateRelayerInput) (*entities.Pool, error) {
	if !common.IsHexAddress(input.Relayer) {
		return nil, domainerrors.ErrInvalidWallet
	}
	relayer := common.HexToAddress(input.Relayer)

	var updated *entities.Pool
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}

		pool.Relayer = relayer
		if err := u.poolRepo.Update(ctx, pool); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress:     poolAddress,
			EventType:       entities.EventRelayerUpdated,
			AffiliateWallet: null.StringFrom(relayer.Hex()),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		updated = pool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Deactivate turns the pool's activity gate off. Escrow withdrawals remain
// available so the merchant can always recover remaining funds.
func (u *PoolUsecase) Deactivate(ctx context.Context, caller, poolAddress common.Address) (*entities.Pool, error) {
	var updated *entities.Pool
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}

		pool.IsActive = false
		pool.DeactivatedAt = null.TimeFrom(time.Now())
		if err := u.poolRepo.Update(ctx, pool); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress: poolAddress,
			EventType:   entities.EventPoolDeactivated,
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		updated = pool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DepositEscrow tops up the pool's vault from the merchant's ledger account.
// Requires an active pool.
func (u *PoolUsecase) DepositEscrow(ctx context.Context, caller, poolAddress common.Address, input *entities.EscrowAmountInput) (*entities.PoolResponse, error) {
	if input.Amount == 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	var resp *entities.PoolResponse
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}
		if !pool.IsActive {
			return domainerrors.ErrPoolInactive
		}

		merchantAccount := derive.TokenAccountAddress(caller)
		if err := u.ledger.Transfer(ctx, merchantAccount, pool.EscrowAuthority, input.Amount, derive.WalletAuthority(caller)); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress: poolAddress,
			EventType:   entities.EventEscrowDeposited,
			Amount:      null.Uint64From(input.Amount),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		resp, err = u.withVault(ctx, pool)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.EscrowDeposits.Inc()
	return resp, nil
}

// WithdrawEscrow returns vault funds to the merchant's ledger account. The
// debit is authorized by the derived escrow authority, not the merchant's
// signature, and stays available after deactivation.
func (u *PoolUsecase) WithdrawEscrow(ctx context.Context, caller, poolAddress common.Address, input *entities.EscrowAmountInput) (*entities.PoolResponse, error) {
	if input.Amount == 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	var resp *entities.PoolResponse
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}

		vaultAddress := derive.TokenAccountAddress(pool.EscrowAuthority)
		err = u.ledger.Transfer(ctx, vaultAddress, pool.Merchant, input.Amount, derive.EscrowAuthorityFor(pool.Address))
		if errors.Is(err, domainerrors.ErrInsufficientFunds) {
			return domainerrors.ErrInsufficientEscrowBalance
		}
		if err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress: poolAddress,
			EventType:   entities.EventEscrowWithdrawn,
			Amount:      null.Uint64From(input.Amount),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		resp, err = u.withVault(ctx, pool)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "escrow withdrawn",
		zap.String("pool", poolAddress.Hex()),
		zap.Uint64("amount", input.Amount))
	metrics.EscrowWithdrawals.Inc()
	return resp, nil
}

// GetPool returns a pool with its vault address and live balance
func (u *PoolUsecase) GetPool(ctx context.Context, address common.Address) (*entities.PoolResponse, error) {
	pool, err := u.poolRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	return u.withVault(ctx, pool)
}

// ListPools lists a merchant's pools
func (u *PoolUsecase) ListPools(ctx context.Context, merchant common.Address, limit, offset int) ([]*entities.Pool, int, error) {
	return u.poolRepo.ListByMerchant(ctx, merchant, limit, offset)
}

// ListEvents returns the pool's audit history
func (u *PoolUsecase) ListEvents(ctx context.Context, poolAddress common.Address, limit, offset int) ([]*entities.PoolEvent, int, error) {
	if _, err := u.poolRepo.GetByAddress(ctx, poolAddress); err != nil {
		return nil, 0, err
	}
	return u.eventRepo.ListByPool(ctx, poolAddress, limit, offset)
}

// withVault attaches the vault address and balance to a pool. A vault that
// was never credited reads as zero.
func (u *PoolUsecase) withVault(ctx context.Context, pool *entities.Pool) (*entities.PoolResponse, error) {
	vaultAddress := derive.TokenAccountAddress(pool.EscrowAuthority)
	resp := &entities.PoolResponse{
		Pool:         pool,
		VaultAddress: vaultAddress,
	}

	vault, err := u.tokenRepo.GetByAddress(ctx, vaultAddress)
	if err == nil {
		resp.VaultBalance = vault.Balance
		return resp, nil
	}
	if errors.Is(err, domainerrors.ErrNotFound) {
		return resp, nil
	}
	return nil, err
}
