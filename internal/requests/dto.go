package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// SupplyRequestDTO represents the supply request payload returned to clients.
type SupplyRequestDTO struct {
	ID           uuid.UUID  `json:"id"`
	VendorID     uuid.UUID  `json:"vendor_id"`
	VendorName   string     `json:"vendor_name,omitempty"`
	ProductID    uuid.UUID  `json:"product_id"`
	ProductName  string     `json:"product_name,omitempty"`
	ProductSKU   string     `json:"product_sku,omitempty"`
	Quantity     int        `json:"quantity"`
	ExpectedDate *time.Time `json:"expected_date,omitempty"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewSupplyRequestDTO builds a DTO from the persisted model.
func NewSupplyRequestDTO(request *models.SupplyRequest) *SupplyRequestDTO {
	dto := &SupplyRequestDTO{
		ID:           request.ID,
		VendorID:     request.VendorID,
		ProductID:    request.ProductID,
		Quantity:     request.Quantity,
		ExpectedDate: request.ExpectedDate,
		Status:       request.Status.String(),
		Notes:        request.Notes,
		CreatedAt:    request.CreatedAt,
		UpdatedAt:    request.UpdatedAt,
	}
	if request.Vendor != nil {
		dto.VendorName = request.Vendor.Name
	}
	if request.Product != nil {
		dto.ProductName = request.Product.Name
		dto.ProductSKU = request.Product.SKU
	}
	return dto
}

// NewSupplyRequestDTOs maps a slice of models.
func NewSupplyRequestDTOs(rows []models.SupplyRequest) []SupplyRequestDTO {
	dtos := make([]SupplyRequestDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewSupplyRequestDTO(&rows[i])
	}
	return dtos
}
