package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"refpool.backend/internal/domain/entities"
	domainerrors "refpool.backend/internal/domain/errors"
	"refpool.backend/internal/infrastructure/models"
	"refpool.backend/pkg/utils"
)

// TokenAccountRepository implements the settlement-token ledger
type TokenAccountRepository struct {
	db *gorm.DB
}

// NewTokenAccountRepository creates a new token account repository
func NewTokenAccountRepository(db *gorm.DB) *TokenAccountRepository {
	return &TokenAccountRepository{db: db}
}

// Create creates a new token account with a zero or seeded balance
func (r *TokenAccountRepository) Create(ctx context.Context, account *entities.TokenAccount) error {
	now := time.Now()
	m := &models.TokenAccount{
		ID:        utils.GenerateUUIDv7(),
		Address:   account.Address.Hex(),
		Owner:     account.Owner.Hex(),
		Balance:   account.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateAccount
		}
		return err
	}

	account.ID = m.ID
	account.CreatedAt = m.CreatedAt
	account.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByAddress gets a token account by address
func (r *TokenAccountRepository) GetByAddress(ctx context.Context, address common.Address) (*entities.TokenAccount, error) {
	var m models.TokenAccount
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Where("address = ?", address.Hex()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entities.TokenAccount{
		ID:        m.ID,
		Address:   common.HexToAddress(m.Address),
		Owner:     common.HexToAddress(m.Owner),
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Credit adds amount to the account balance with wraparound protection
func (r *TokenAccountRepository) Credit(ctx context.Context, address common.Address, amount uint64) error {
	account, err := r.GetByAddress(ctx, address)
	if err != nil {
		return err
	}

	newBalance, ok := utils.CheckedAdd(account.Balance, amount)
	if !ok {
		return domainerrors.ErrOverflow
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.TokenAccount{}).
		Where("address = ?", address.Hex()).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Debit subtracts amount; the balance guard is part of the UPDATE so a short
// account can never go negative.
func (r *TokenAccountRepository) Debit(ctx context.Context, address common.Address, amount uint64) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Model(&models.TokenAccount{}).
		Where("address = ? AND balance >= ?", address.Hex(), amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByAddress(ctx, address); err != nil {
			return err
		}
		return domainerrors.ErrInsufficientFunds
	}
	return nil
}
