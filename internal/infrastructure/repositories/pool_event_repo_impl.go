package repositories

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"refpool.backend/internal/domain/entities"
	"refpool.backend/internal/infrastructure/models"
	"refpool.backend/pkg/utils"
)

// PoolEventRepository implements audit-log data operations
type PoolEventRepository struct {
	db *gorm.DB
}

// NewPoolEventRepository creates a new pool event repository
func NewPoolEventRepository(db *gorm.DB) *PoolEventRepository {
	return &PoolEventRepository{db: db}
}

// Create appends an audit event
func (r *PoolEventRepository) Create(ctx context.Context, event *entities.PoolEvent) error {
	m := &models.PoolEvent{
		ID:          utils.GenerateUUIDv7(),
		PoolAddress: event.PoolAddress.Hex(),
		EventType:   string(event.EventType),
		CreatedAt:   time.Now(),
	}
	if event.AffiliateWallet.Valid {
		wallet := event.AffiliateWallet.String
		m.AffiliateWallet = &wallet
	}
	if event.Amount.Valid {
		amount := event.Amount.Uint64
		m.Amount = &amount
	}
	if event.Commission.Valid {
		commission := event.Commission.Uint64
		m.Commission = &commission
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	event.ID = m.ID
	event.CreatedAt = m.CreatedAt
	return nil
}

// ListByPool lists a pool's audit events, newest first
func (r *PoolEventRepository) ListByPool(ctx context.Context, pool common.Address, limit, offset int) ([]*entities.PoolEvent, int, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.PoolEvent{}).
		Where("pool_address = ?", pool.Hex())

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PoolEvent
	q := db.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	events := make([]*entities.PoolEvent, 0, len(rows))
	for i := range rows {
		events = append(events, toPoolEventEntity(&rows[i]))
	}
	return events, int(total), nil
}

// DeleteOlderThan prunes audit rows past the retention window
func (r *PoolEventRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.PoolEvent{})
	return result.RowsAffected, result.Error
}

func toPoolEventEntity(m *models.PoolEvent) *entities.PoolEvent {
	e := &entities.PoolEvent{
		ID:          m.ID,
		PoolAddress: common.HexToAddress(m.PoolAddress),
		EventType:   entities.PoolEventType(m.EventType),
		CreatedAt:   m.CreatedAt,
	}
	if m.AffiliateWallet != nil {
		e.AffiliateWallet = null.StringFrom(*m.AffiliateWallet)
	}
	if m.Amount != nil {
		e.Amount = null.Uint64From(*m.Amount)
	}
	if m.Commission != nil {
		e.Commission = null.Uint64From(*m.Commission)
	}
	return e
}
