package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the immutable financial record produced by a commit. Customer and
// line data are denormalized so later catalog edits never alter it.
type Order struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceNumber      string          `gorm:"column:invoice_number;not null;uniqueIndex"`
	Date               time.Time       `gorm:"column:date;not null"`
	CustomerName       string          `gorm:"column:customer_name;not null"`
	CustomerPhone      *string         `gorm:"column:customer_phone"`
	CustomerAddress    *string         `gorm:"column:customer_address"`
	CustomerGSTIN      *string         `gorm:"column:customer_gstin"`
	TotalAmount        decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null;default:0"`
	DiscountAmount     decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	TotalGST           decimal.Decimal `gorm:"column:total_gst;type:numeric(14,2);not null;default:0"`
	GrandTotal         decimal.Decimal `gorm:"column:grand_total;type:numeric(14,2);not null"`
	Items              []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
