package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/infrastructure/models"
	"refpool.backend/pkg/utils"
)

// AffiliateRepository implements affiliate record data operations
type AffiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(db *gorm.DB) *AffiliateRepository {
	return &AffiliateRepository{db: db}
}

// Create creates a new affiliate record
func (r *AffiliateRepository) Create(ctx context.Context, affiliate *entities.Affiliate) error {
	now := time.Now()
	m := &models.Affiliate{
		ID:          utils.GenerateUUIDv7(),
		Address:     affiliate.Address.Hex(),
		PoolAddress: affiliate.PoolAddress.Hex(),
		Wallet:      affiliate.Wallet.Hex(),
		RefID:       affiliate.RefID,
		IsActive:    affiliate.IsActive,
		TotalEarned: affiliate.TotalEarned,
		SalesCount:  affiliate.SalesCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateAccount
		}
		return err
	}

	affiliate.ID = m.ID
	affiliate.CreatedAt = m.CreatedAt
	affiliate.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByPoolAndWallet gets the affiliate record for a (pool, wallet) pair
func (r *AffiliateRepository) GetByPoolAndWallet(ctx context.Context, pool, wallet common.Address) (*entities.Affiliate, error) {
	var m models.Affiliate
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("pool_address = ? AND wallet = ?", pool.Hex(), wallet.Hex()).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toAffiliateEntity(&m), nil
}

// ListByPool lists a pool's affiliates, newest first
func (r *AffiliateRepository) ListByPool(ctx context.Context, pool common.Address, limit, offset int) ([]*entities.Affiliate, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Affiliate{}).
		Where("pool_address = ?", pool.Hex())

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Affiliate
	q := db.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	affiliates := make([]*entities.Affiliate, 0, len(rows))
	for i := range rows {
		affiliates = append(affiliates, toAffiliateEntity(&rows[i]))
	}
	return affiliates, int(total), nil
}

// Update persists the mutable affiliate fields (gate, totals)
func (r *AffiliateRepository) Update(ctx context.Context, affiliate *entities.Affiliate) error {
	affiliate.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"is_active":    affiliate.IsActive,
		"total_earned": affiliate.TotalEarned,
		"sales_count":  affiliate.SalesCount,
		"updated_at":   affiliate.UpdatedAt,
	}
	if affiliate.DeactivatedAt.Valid {
		updates["deactivated_at"] = affiliate.DeactivatedAt.Time
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.Affiliate{}).
		Where("address = ?", affiliate.Address.Hex()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toAffiliateEntity(m *models.Affiliate) *entities.Affiliate {
	a := &entities.Affiliate{
		ID:          m.ID,
		Address:     common.HexToAddress(m.Address),
		PoolAddress: common.HexToAddress(m.PoolAddress),
		Wallet:      common.HexToAddress(m.Wallet),
		RefID:       m.RefID,
		IsActive:    m.IsActive,
		TotalEarned: m.TotalEarned,
		SalesCount:  m.SalesCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.DeactivatedAt != nil {
		a.DeactivatedAt = null.TimeFrom(*m.DeactivatedAt)
	}
	return a
}
