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

// PoolRepository implements pool record data operations
type PoolRepository struct {
	db *gorm.DB
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *gorm.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

// Create creates a new pool record
func (r *PoolRepository) Create(ctx context.Context, pool *entities.Pool) error {
	now := time.Now()
	m := &models.Pool{
		ID:                   utils.GenerateUUIDv7(),
		Address:              pool.Address.Hex(),
		Merchant:             pool.Merchant.Hex(),
		PoolID:               pool.PoolID,
		CommissionRate:       pool.CommissionRate,
		IsActive:             pool.IsActive,
		TotalVolume:          pool.TotalVolume,
		TotalCommissionsPaid: pool.TotalCommissionsPaid,
		EscrowAuthority:      pool.EscrowAuthority.Hex(),
		Relayer:              pool.Relayer.Hex(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateAccount
		}
		return err
	}

	pool.ID = m.ID
	pool.CreatedAt = m.CreatedAt
	pool.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByAddress gets a pool by its derived record address
func (r *PoolRepository) GetByAddress(ctx context.Context, address common.Address) (*entities.Pool, error) {
	var m models.Pool
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Where("address = ?", address.Hex()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toPoolEntity(&m), nil
}

// GetByMerchantAndPoolID gets a pool by its creation key
func (r *PoolRepository) GetByMerchantAndPoolID(ctx context.Context, merchant common.Address, poolID string) (*entities.Pool, error) {
	var m models.Pool
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("merchant = ? AND pool_id = ?", merchant.Hex(), poolID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toPoolEntity(&m), nil
}

// ListByMerchant lists a merchant's pools, newest first
func (r *PoolRepository) ListByMerchant(ctx context.Context, merchant common.Address, limit, offset int) ([]*entities.Pool, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Pool{}).
		Where("merchant = ?", merchant.Hex())

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Pool
	q := db.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	pools := make([]*entities.Pool, 0, len(rows))
	for i := range rows {
		pools = append(pools, toPoolEntity(&rows[i]))
	}
	return pools, int(total), nil
}

// Update persists the mutable pool fields (gate, rate, relayer, totals)
func (r *PoolRepository) Update(ctx context.Context, pool *entities.Pool) error {
	pool.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"commission_rate":        pool.CommissionRate,
		"is_active":              pool.IsActive,
		"total_volume":           pool.TotalVolume,
		"total_commissions_paid": pool.TotalCommissionsPaid,
		"relayer":                pool.Relayer.Hex(),
		"updated_at":             pool.UpdatedAt,
	}
	if pool.DeactivatedAt.Valid {
		updates["deactivated_at"] = pool.DeactivatedAt.Time
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.Pool{}).
		Where("address = ?", pool.Address.Hex()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toPoolEntity(m *models.Pool) *entities.Pool {
	p := &entities.Pool{
		ID:                   m.ID,
		Address:              common.HexToAddress(m.Address),
		Merchant:             common.HexToAddress(m.Merchant),
		PoolID:               m.PoolID,
		CommissionRate:       m.CommissionRate,
		IsActive:             m.IsActive,
		TotalVolume:          m.TotalVolume,
		TotalCommissionsPaid: m.TotalCommissionsPaid,
		EscrowAuthority:      common.HexToAddress(m.EscrowAuthority),
		Relayer:              common.HexToAddress(m.Relayer),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.DeactivatedAt != nil {
		p.DeactivatedAt = null.TimeFrom(*m.DeactivatedAt)
	}
	return p
}
