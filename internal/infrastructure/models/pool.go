package models

import (
	"time"

	"github.com/google/uuid"
)

type Pool struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address              string    `gorm:"type:varchar(42);not null;uniqueIndex"`
	Merchant             string    `gorm:"type:varchar(42);not null;index;uniqueIndex:idx_pools_merchant_pool_id"`
	PoolID               string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_pools_merchant_pool_id"`
	CommissionRate       uint16    `gorm:"not null"`
	IsActive             bool      `gorm:"not null;default:true"`
	TotalVolume          uint64    `gorm:"not null;default:0"`
	TotalCommissionsPaid uint64    `gorm:"not null;default:0"`
	EscrowAuthority      string    `gorm:"type:varchar(42);not null"`
	Relayer              string    `gorm:"type:varchar(42);not null"`
	DeactivatedAt        *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Pool) TableName() string { return "pools" }
