package models

import (
	"time"

	"github.com/google/uuid"
)

// Operator is the single shop login. The system is single-user; more rows are
// allowed but nothing in the domain is scoped per operator.
type Operator struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
