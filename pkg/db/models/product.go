package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/pkg/enums"
)

// Product represents the canonical catalog listing. Orders snapshot the fields
// they need, so editing or deleting a product never rewrites history.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	SKU           string                `gorm:"column:sku;not null;uniqueIndex"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	Category      enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Unit          enums.ProductUnit     `gorm:"column:unit;type:text;not null"`
	CostPrice     decimal.Decimal       `gorm:"column:cost_price;type:numeric(12,2);not null"`
	SellingPrice  decimal.Decimal       `gorm:"column:selling_price;type:numeric(12,2);not null"`
	GSTPercentage decimal.Decimal       `gorm:"column:gst_percentage;type:numeric(5,2);not null"`
	StockQuantity int                   `gorm:"column:stock_quantity;not null;default:0"`
	MinThreshold  int                   `gorm:"column:min_threshold;not null;default:0"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
