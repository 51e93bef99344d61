package models

import (
	"time"

	"github.com/google/uuid"
)

type Affiliate struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address       string    `gorm:"type:varchar(42);not null;uniqueIndex"`
	PoolAddress   string    `gorm:"type:varchar(42);not null;index;uniqueIndex:idx_affiliates_pool_wallet"`
	Wallet        string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_affiliates_pool_wallet"`
	RefID         string    `gorm:"type:varchar(32);not null"`
	IsActive      bool      `gorm:"not null;default:true"`
	TotalEarned   uint64    `gorm:"not null;default:0"`
	SalesCount    uint64    `gorm:"not null;default:0"`
	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Affiliate) TableName() string { return "affiliates" }
