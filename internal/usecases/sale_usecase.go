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
	"refpool.backend/pkg/utils"
)

// SaleUsecase handles sale reporting and commission payout
type SaleUsecase struct {
	poolRepo      repositories.PoolRepository
	affiliateRepo repositories.AffiliateRepository
	eventRepo     repositories.PoolEventRepository
	ledger        *LedgerUsecase
	uow           repositories.UnitOfWork
}

// NewSaleUsecase creates a new sale usecase
func NewSaleUsecase(
	poolRepo repositories.PoolRepository,
	affiliateRepo repositories.AffiliateRepository,
	eventRepo repositories.PoolEventRepository,
	ledger *LedgerUsecase,
	uow repositories.UnitOfWork,
) *SaleUsecase {
	return &SaleUsecase{
		poolRepo:      poolRepo,
		affiliateRepo: affiliateRepo,
		eventRepo:     eventRepo,
		ledger:        ledger,
		uow:           uow,
	}
}

// ProcessSale pays the affiliate their commission on a reported sale and
// rolls the pool and affiliate totals forward, all in one transaction.
// Precondition order: relayer authority, pool gate, affiliate gate, amount,
// then the commission and balance checks. Any failure leaves every record
// untouched.
func (u *SaleUsecase) ProcessSale(ctx context.Context, caller, poolAddress, wallet common.Address, input *entities.ProcessSaleInput) (*entities.SaleReceipt, error) {
	var receipt *entities.SaleReceipt
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Relayer != caller {
			return domainerrors.ErrUnauthorized
		}
		if !pool.IsActive {
			return domainerrors.ErrPoolInactive
		}

		affiliate, err := u.affiliateRepo.GetByPoolAndWallet(ctx, poolAddress, wallet)
		if err != nil {
			return err
		}
		if !affiliate.IsActive {
			return domainerrors.ErrAffiliateInactive
		}

		if input.Amount == 0 {
			return domainerrors.ErrInvalidAmount
		}

		commission, ok := utils.MulDiv(input.Amount, uint64(pool.CommissionRate), BasisPointsDenominator)
		if !ok {
			return domainerrors.ErrOverflow
		}
		if commission == 0 {
			return domainerrors.ErrCommissionTooSmall
		}

		vaultAddress := derive.TokenAccountAddress(pool.EscrowAuthority)
		err = u.ledger.Transfer(ctx, vaultAddress, affiliate.Wallet, commission, derive.EscrowAuthorityFor(pool.Address))
		if errors.Is(err, domainerrors.ErrInsufficientFunds) {
			return domainerrors.ErrInsufficientEscrowBalance
		}
		if err != nil {
			return err
		}

		pool.TotalVolume, ok = utils.CheckedAdd(pool.TotalVolume, input.Amount)
		if !ok {
			return domainerrors.ErrOverflow
		}
		pool.TotalCommissionsPaid, ok = utils.CheckedAdd(pool.TotalCommissionsPaid, commission)
		if !ok {
			return domainerrors.ErrOverflow
		}
		affiliate.TotalEarned, ok = utils.CheckedAdd(affiliate.TotalEarned, commission)
		if !ok {
			return domainerrors.ErrOverflow
		}
		affiliate.SalesCount++

		if err := u.poolRepo.Update(ctx, pool); err != nil {
			return err
		}
		if err := u.affiliateRepo.Update(ctx, affiliate); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress:     poolAddress,
			EventType:       entities.EventSaleProcessed,
			AffiliateWallet: null.StringFrom(affiliate.Wallet.Hex()),
			Amount:          null.Uint64From(input.Amount),
			Commission:      null.Uint64From(commission),
		}
		if err := u.eventRepo.Create(ctx, event); err != nil {
			return err
		}

		receipt = &entities.SaleReceipt{
			PoolAddress:          poolAddress,
			AffiliateWallet:      affiliate.Wallet,
			SaleAmount:           input.Amount,
			Commission:           commission,
			TotalVolume:          pool.TotalVolume,
			TotalCommissionsPaid: pool.TotalCommissionsPaid,
			AffiliateTotalEarned: affiliate.TotalEarned,
			AffiliateSalesCount:  affiliate.SalesCount,
			ProcessedAt:          time.Now(),
		}
		return nil
	})
	if err != nil {
		metrics.SaleFailures.WithLabelValues(saleFailureReason(err)).Inc()
		return nil, err
	}

	logger.Info(ctx, "sale processed",
		zap.String("pool", poolAddress.Hex()),
		zap.String("affiliate", wallet.Hex()),
		zap.Uint64("amount", receipt.SaleAmount),
		zap.Uint64("commission", receipt.Commission))
	metrics.SalesProcessed.Inc()
	metrics.SaleVolume.Add(float64(receipt.SaleAmount))
	metrics.CommissionsPaid.Add(float64(receipt.Commission))
	return receipt, nil
}

func saleFailureReason(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domainerrors.ErrPoolInactive):
		return "pool_inactive"
	case errors.Is(err, domainerrors.ErrAffiliateInactive):
		return "affiliate_inactive"
	case errors.Is(err, domainerrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domainerrors.ErrCommissionTooSmall):
		return "commission_too_small"
	case errors.Is(err, domainerrors.ErrInsufficientEscrowBalance):
		return "insufficient_escrow"
	case errors.Is(err, domainerrors.ErrOverflow):
		return "overflow"
	default:
		return "internal"
	}
}
