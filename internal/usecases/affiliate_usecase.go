package usecases

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/domain/repositories"
	"refpool.backend/pkg/derive"
)

// AffiliateUsecase handles affiliate registration business logic
type AffiliateUsecase struct {
	affiliateRepo repositories.AffiliateRepository
	poolRepo      repositories.PoolRepository
	eventRepo     repositories.PoolEventRepository
	uow           repositories.UnitOfWork
}

// NewAffiliateUsecase creates a new affiliate usecase
func NewAffiliateUsecase(
	affiliateRepo repositories.AffiliateRepository,
	poolRepo repositories.PoolRepository,
	eventRepo repositories.PoolEventRepository,
	uow repositories.UnitOfWork,
) *AffiliateUsecase {
	return &AffiliateUsecase{
		affiliateRepo: affiliateRepo,
		poolRepo:      poolRepo,
		eventRepo:     eventRepo,
		uow:           uow,
	}
}

// AddAffiliate registers a wallet as a referrer on an active pool. A wallet
// holds at most one record per pool, removed or not, so re-registering a
// removed affiliate is a duplicate.
func (u *AffiliateUsecase) AddAffiliate(ctx context.Context, caller, poolAddress common.Address, input *entities.AddAffiliateInput) (*entities.Affiliate, error) {
	if len(input.RefID) == 0 || len(input.RefID) > MaxRefIDLen {
		return nil, domainerrors.ErrInvalidRefID
	}
	if !common.IsHexAddress(input.Wallet) {
		return nil, domainerrors.ErrInvalidWallet
	}
	wallet := common.HexToAddress(input.Wallet)

	var affiliate *entities.Affiliate
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

		affiliate = &entities.Affiliate{
			Address:     derive.AffiliateAddress(poolAddress, wallet),
			PoolAddress: poolAddress,
			Wallet:      wallet,
			RefID:       input.RefID,
			IsActive:    true,
		}
		if err := u.affiliateRepo.Create(ctx, affiliate); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress:     poolAddress,
			EventType:       entities.EventAffiliateAdded,
			AffiliateWallet: null.StringFrom(wallet.Hex()),
		}
		return u.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return affiliate, nil
}

// RemoveAffiliate deactivates the affiliate's record. Accrued totals are
// preserved so past earnings stay auditable.
func (u *AffiliateUsecase) RemoveAffiliate(ctx context.Context, caller, poolAddress, wallet common.Address) (*entities.Affiliate, error) {
	var affiliate *entities.Affiliate
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		pool, err := u.poolRepo.GetByAddress(ctx, poolAddress)
		if err != nil {
			return err
		}
		if pool.Merchant != caller {
			return domainerrors.ErrUnauthorized
		}

		affiliate, err = u.affiliateRepo.GetByPoolAndWallet(ctx, poolAddress, wallet)
		if err != nil {
			return err
		}

		affiliate.IsActive = false
		affiliate.DeactivatedAt = null.TimeFrom(time.Now())
		if err := u.affiliateRepo.Update(ctx, affiliate); err != nil {
			return err
		}

		event := &entities.PoolEvent{
			PoolAddress:     poolAddress,
			EventType:       entities.EventAffiliateRemoved,
			AffiliateWallet: null.StringFrom(wallet.Hex()),
		}
		return u.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return affiliate, nil
}

// GetAffiliate returns the affiliate record for a (pool, wallet) pair
func (u *AffiliateUsecase) GetAffiliate(ctx context.Context, poolAddress, wallet common.Address) (*entities.Affiliate, error) {
	return u.affiliateRepo.GetByPoolAndWallet(ctx, poolAddress, wallet)
}

// ListAffiliates lists a pool's affiliates
func (u *AffiliateUsecase) ListAffiliates(ctx context.Context, poolAddress common.Address, limit, offset int) ([]*entities.Affiliate, int, error) {
	if _, err := u.poolRepo.GetByAddress(ctx, poolAddress); err != nil {
		return nil, 0, err
	}
	return u.affiliateRepo.ListByPool(ctx, poolAddress, limit, offset)
}
