package repositories

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"refpool.backend/internal/domain/entities"
)

// AffiliateRepository defines affiliate record data operations
type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *entities.Affiliate) error
	GetByPoolAndWallet(ctx context.Context, pool, wallet common.Address) (*entities.Affiliate, error)
	ListByPool(ctx context.Context, pool common.Address, limit, offset int) ([]*entities.Affiliate, int, error)
	Update(ctx context.Context, affiliate *entities.Affiliate) error
}
