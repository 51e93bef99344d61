package repositories

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/domain/entities"
)

// PoolEventRepository defines audit-log data operations
type PoolEventRepository interface {
	Create(ctx context.Context, event *entities.PoolEvent) error
	ListByPool(ctx context.Context, pool common.Address, limit, offset int) ([]*entities.PoolEvent, int, error)
	// DeleteOlderThan prunes audit rows past the retention window.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
