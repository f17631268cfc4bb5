package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/pkg/enums"
)

// CartRecord is the single working cart for a session. It is scratch state,
// never financial truth; the order snapshot taken at commit time is.
type CartRecord struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Status             enums.CartStatus `gorm:"column:status;type:text;not null;default:'active'"`
	CustomerName       string           `gorm:"column:customer_name;not null;default:''"`
	CustomerPhone      *string          `gorm:"column:customer_phone"`
	CustomerAddress    *string          `gorm:"column:customer_address"`
	CustomerGSTIN      *string          `gorm:"column:customer_gstin"`
	DiscountPercentage decimal.Decimal  `gorm:"column:discount_percentage;type:numeric(5,2);not null;default:0"`
	ConvertedAt        *time.Time       `gorm:"column:converted_at"`
	Items              []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
