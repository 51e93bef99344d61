package models

import (
	"time"

	"github.com/google/uuid"
)

type PoolEvent struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PoolAddress     string    `gorm:"type:varchar(42);not null;index"`
	EventType       string    `gorm:"type:varchar(50);not null"`
	AffiliateWallet *string   `gorm:"type:varchar(42)"`
	Amount          *uint64
	Commission      *uint64
	CreatedAt       time.Time `gorm:"index"`
}

func (PoolEvent) TableName() string { return "pool_events" }
