package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/pkg/utils"
)

// In-memory repository doubles. They enforce the same uniqueness and balance
// rules as the GORM implementations so usecase tests exercise real flows.

type memPoolRepo struct {
	pools map[common.Address]*entities.Pool
}

func newMemPoolRepo() *memPoolRepo {
	return &memPoolRepo{pools: map[common.Address]*entities.Pool{}}
}

func (r *memPoolRepo) Create(_ context.Context, pool *entities.Pool) error {
	if _, ok := r.pools[pool.Address]; ok {
		return domainerrors.ErrDuplicateAccount
	}
	for _, p := range r.pools {
		if p.Merchant == pool.Merchant && p.PoolID == pool.PoolID {
			return domainerrors.ErrDuplicateAccount
		}
	}
	pool.ID = uuid.New()
	pool.CreatedAt = time.Now()
	pool.UpdatedAt = pool.CreatedAt
	cp := *pool
	r.pools[pool.Address] = &cp
	return nil
}

func (r *memPoolRepo) GetByAddress(_ context.Context, address common.Address) (*entities.Pool, error) {
	p, ok := r.pools[address]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPoolRepo) GetByMerchantAndPoolID(_ context.Context, merchant common.Address, poolID string) (*entities.Pool, error) {
	for _, p := range r.pools {
		if p.Merchant == merchant && p.PoolID == poolID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memPoolRepo) ListByMerchant(_ context.Context, merchant common.Address, limit, offset int) ([]*entities.Pool, int, error) {
	var out []*entities.Pool
	for _, p := range r.pools {
		if p.Merchant == merchant {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memPoolRepo) Update(_ context.Context, pool *entities.Pool) error {
	if _, ok := r.pools[pool.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *pool
	r.pools[pool.Address] = &cp
	return nil
}

type memAffiliateRepo struct {
	affiliates map[common.Address]*entities.Affiliate
}

func newMemAffiliateRepo() *memAffiliateRepo {
	return &memAffiliateRepo{affiliates: map[common.Address]*entities.Affiliate{}}
}

func (r *memAffiliateRepo) Create(_ context.Context, affiliate *entities.Affiliate) error {
	if _, ok := r.affiliates[affiliate.Address]; ok {
		return domainerrors.ErrDuplicateAccount
	}
	affiliate.ID = uuid.New()
	affiliate.CreatedAt = time.Now()
	affiliate.UpdatedAt = affiliate.CreatedAt
	cp := *affiliate
	r.affiliates[affiliate.Address] = &cp
	return nil
}

func (r *memAffiliateRepo) GetByPoolAndWallet(_ context.Context, pool, wallet common.Address) (*entities.Affiliate, error) {
	for _, a := range r.affiliates {
		if a.PoolAddress == pool && a.Wallet == wallet {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (r *memAffiliateRepo) ListByPool(_ context.Context, pool common.Address, limit, offset int) ([]*entities.Affiliate, int, error) {
	var out []*entities.Affiliate
	for _, a := range r.affiliates {
		if a.PoolAddress == pool {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memAffiliateRepo) Update(_ context.Context, affiliate *entities.Affiliate) error {
	if _, ok := r.affiliates[affiliate.Address]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *affiliate
	r.affiliates[affiliate.Address] = &cp
	return nil
}

type memTokenRepo struct {
	accounts map[common.Address]*entities.TokenAccount
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{accounts: map[common.Address]*entities.TokenAccount{}}
}

func (r *memTokenRepo) Create(_ context.Context, account *entities.TokenAccount) error {
	if _, ok := r.accounts[account.Address]; ok {
		return domainerrors.ErrDuplicateAccount
	}
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	r.accounts[account.Address] = &cp
	return nil
}

func (r *memTokenRepo) GetByAddress(_ context.Context, address common.Address) (*entities.TokenAccount, error) {
	a, ok := r.accounts[address]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memTokenRepo) Credit(_ context.Context, address common.Address, amount uint64) error {
	a, ok := r.accounts[address]
	if !ok {
		return domainerrors.ErrNotFound
	}
	sum, ok2 := utils.CheckedAdd(a.Balance, amount)
	if !ok2 {
		return domainerrors.ErrOverflow
	}
	a.Balance = sum
	return nil
}

func (r *memTokenRepo) Debit(_ context.Context, address common.Address, amount uint64) error {
	a, ok := r.accounts[address]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if a.Balance < amount {
		return domainerrors.ErrInsufficientFunds
	}
	a.Balance -= amount
	return nil
}

type memEventRepo struct {
	events []*entities.PoolEvent
}

func newMemEventRepo() *memEventRepo { return &memEventRepo{} }

func (r *memEventRepo) Create(_ context.Context, event *entities.PoolEvent) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

func (r *memEventRepo) ListByPool(_ context.Context, pool common.Address, limit, offset int) ([]*entities.PoolEvent, int, error) {
	var out []*entities.PoolEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].PoolAddress == pool {
			cp := *r.events[i]
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *memEventRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*entities.PoolEvent
	var removed int64
	for _, e := range r.events {
		if e.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return removed, nil
}

func (r *memEventRepo) lastForPool(pool common.Address) *entities.PoolEvent {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].PoolAddress == pool {
			return r.events[i]
		}
	}
	return nil
}

// passthroughUOW runs the function directly. Transaction rollback itself is
// covered by the GORM unit of work tests.
type passthroughUOW struct{}

func (passthroughUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	pools      *memPoolRepo
	affiliates *memAffiliateRepo
	tokens     *memTokenRepo
	events     *memEventRepo

	ledger      *LedgerUsecase
	poolUC      *PoolUsecase
	affiliateUC *AffiliateUsecase
	saleUC      *SaleUsecase
}

func newFixture() *fixture {
	f := &fixture{
		pools:      newMemPoolRepo(),
		affiliates: newMemAffiliateRepo(),
		tokens:     newMemTokenRepo(),
		events:     newMemEventRepo(),
	}
	uow := passthroughUOW{}
	f.ledger = NewLedgerUsecase(f.tokens, uow)
	f.poolUC = NewPoolUsecase(f.pools, f.tokens, f.events, f.ledger, uow)
	f.affiliateUC = NewAffiliateUsecase(f.affiliates, f.pools, f.events, uow)
	f.saleUC = NewSaleUsecase(f.pools, f.affiliates, f.events, f.ledger, uow)
	return f
}

func (f *fixture) fund(t *testing.T, wallet common.Address, amount uint64) {
	t.Helper()
	_, err := f.ledger.Mint(context.Background(), &entities.MintInput{
		Wallet: wallet.Hex(),
		Amount: amount,
	})
	require.NoError(t, err)
}
