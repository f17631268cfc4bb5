package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/pkg/enums"
)

// SupplyRequest tracks a restock request raised against a vendor.
type SupplyRequest struct {
	ID           uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey"`
	VendorID     uuid.UUID                 `gorm:"column:vendor_id;type:uuid;not null"`
	ProductID    uuid.UUID                 `gorm:"column:product_id;type:uuid;not null"`
	Quantity     int                       `gorm:"column:quantity;not null"`
	ExpectedDate *time.Time                `gorm:"column:expected_date"`
	Status       enums.SupplyRequestStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes        *string                   `gorm:"column:notes"`
	Vendor       *Vendor                   `gorm:"foreignKey:VendorID"`
	Product      *Product                  `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
