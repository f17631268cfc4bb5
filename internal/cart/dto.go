package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/internal/pricing"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// CartItemDTO is one cart line enriched with catalog data when available.
type CartItemDTO struct {
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name,omitempty"`
	ProductSKU  string           `json:"product_sku,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Quantity    int              `json:"quantity"`
	Position    int              `json:"position"`
}

// CartDTO represents the working cart payload returned to clients.
type CartDTO struct {
	ID                 uuid.UUID       `json:"id"`
	Status             string          `json:"status"`
	CustomerName       string          `json:"customer_name"`
	CustomerPhone      *string         `json:"customer_phone,omitempty"`
	CustomerAddress    *string         `json:"customer_address,omitempty"`
	CustomerGSTIN      *string         `json:"customer_gstin,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Items              []CartItemDTO   `json:"items"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// QuoteLineDTO is one priced line of a quote.
type QuoteLineDTO struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	TotalWithGST  decimal.Decimal `json:"total_with_gst"`
}

// QuoteDTO is the full pricing breakdown for the active cart. Lines whose
// product no longer exists in the catalog are dropped and reported.
type QuoteDTO struct {
	CartID             uuid.UUID       `json:"cart_id"`
	Lines              []QuoteLineDTO  `json:"lines"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxableAmount      decimal.Decimal `json:"taxable_amount"`
	TotalGST           decimal.Decimal `json:"total_gst"`
	GrandTotal         decimal.Decimal `json:"grand_total"`
	DroppedProductIDs  []uuid.UUID     `json:"dropped_product_ids,omitempty"`
}

func newCartDTO(cart *models.CartRecord, products map[uuid.UUID]models.Product) *CartDTO {
	dto := &CartDTO{
		ID:                 cart.ID,
		Status:             cart.Status.String(),
		CustomerName:       cart.CustomerName,
		CustomerPhone:      cart.CustomerPhone,
		CustomerAddress:    cart.CustomerAddress,
		CustomerGSTIN:      cart.CustomerGSTIN,
		DiscountPercentage: cart.DiscountPercentage,
		Items:              make([]CartItemDTO, 0, len(cart.Items)),
		CreatedAt:          cart.CreatedAt,
		UpdatedAt:          cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		line := CartItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Position:  item.Position,
		}
		if product, ok := products[item.ProductID]; ok {
			price := product.SellingPrice
			line.ProductName = product.Name
			line.ProductSKU = product.SKU
			line.UnitPrice = &price
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

func newQuoteDTO(cartID uuid.UUID, quote *pricing.Quote, dropped []uuid.UUID) *QuoteDTO {
	dto := &QuoteDTO{
		CartID:             cartID,
		Lines:              make([]QuoteLineDTO, 0, len(quote.Lines)),
		TotalAmount:        quote.TotalAmount,
		DiscountPercentage: quote.DiscountPercentage,
		DiscountAmount:     quote.DiscountAmount,
		TaxableAmount:      quote.TaxableAmount,
		TotalGST:           quote.TotalGST,
		GrandTotal:         quote.GrandTotal,
		DroppedProductIDs:  dropped,
	}
	for _, line := range quote.Lines {
		dto.Lines = append(dto.Lines, QuoteLineDTO{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			GSTPercentage: line.GSTPercentage,
			Subtotal:      line.Subtotal,
			GSTAmount:     line.GSTAmount,
			TotalWithGST:  line.TotalWithGST,
		})
	}
	return dto
}
