package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/domain/entities"
)

// PoolRepository defines pool record data operations
type PoolRepository interface {
	Create(ctx context.Context, pool *entities.Pool) error
	GetByAddress(ctx context.Context, address common.Address) (*entities.Pool, error)
	GetByMerchantAndPoolID(ctx context.Context, merchant common.Address, poolID string) (*entities.Pool, error)
	ListByMerchant(ctx context.Context, merchant common.Address, limit, offset int) ([]*entities.Pool, int, error)
	Update(ctx context.Context, pool *entities.Pool) error
}
