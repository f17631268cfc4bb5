package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// OrderItemDTO is one frozen line of a committed order.
type OrderItemDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalWithGST  decimal.Decimal `json:"total_with_gst"`
	Position      int             `json:"position"`
}

// OrderDTO represents the committed order payload returned to clients.
type OrderDTO struct {
	ID                 uuid.UUID       `json:"id"`
	InvoiceNumber      string          `json:"invoice_number"`
	Date               time.Time       `json:"date"`
	CustomerName       string          `json:"customer_name"`
	CustomerPhone      *string         `json:"customer_phone,omitempty"`
	CustomerAddress    *string         `json:"customer_address,omitempty"`
	CustomerGSTIN      *string         `json:"customer_gstin,omitempty"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TotalGST           decimal.Decimal `json:"total_gst"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	Items              []OrderItemDTO  `json:"items"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                 order.ID,
		InvoiceNumber:      order.InvoiceNumber,
		Date:               order.Date,
		CustomerName:       order.CustomerName,
		CustomerPhone:      order.CustomerPhone,
		CustomerAddress:    order.CustomerAddress,
		CustomerGSTIN:      order.CustomerGSTIN,
		TotalAmount:        order.TotalAmount,
		DiscountPercentage: order.DiscountPercentage,
		DiscountAmount:     order.DiscountAmount,
		TotalGST:           order.TotalGST,
		GrandTotal:         order.GrandTotal,
		Items:              make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:          order.CreatedAt,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			GSTPercentage: item.GSTPercentage,
			Subtotal:      item.Subtotal,
			TotalWithGST:  item.TotalWithGST,
			Position:      item.Position,
		})
	}
	return dto
}

// NewOrderDTOs maps a slice of models.
func NewOrderDTOs(rows []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewOrderDTO(&rows[i])
	}
	return dtos
}
