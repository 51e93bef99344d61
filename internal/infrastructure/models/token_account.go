package models

import (
	"time"

	"github.com/google/uuid"
)

type TokenAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Address   string    `gorm:"type:varchar(42);not null;uniqueIndex"`
	Owner     string    `gorm:"type:varchar(42);not null;index"`
	Balance   uint64    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TokenAccount) TableName() string { return "token_accounts" }
