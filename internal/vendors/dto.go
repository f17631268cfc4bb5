package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// VendorDTO represents the vendor payload returned to clients.
type VendorDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Address   *string   `json:"address,omitempty"`
	GSTIN     *string   `json:"gstin,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVendorDTO builds a DTO from the persisted model.
func NewVendorDTO(vendor *models.Vendor) *VendorDTO {
	return &VendorDTO{
		ID:        vendor.ID,
		Name:      vendor.Name,
		Phone:     vendor.Phone,
		Email:     vendor.Email,
		Address:   vendor.Address,
		GSTIN:     vendor.GSTIN,
		IsActive:  vendor.IsActive,
		CreatedAt: vendor.CreatedAt,
		UpdatedAt: vendor.UpdatedAt,
	}
}

// NewVendorDTOs maps a slice of models.
func NewVendorDTOs(rows []models.Vendor) []VendorDTO {
	dtos := make([]VendorDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewVendorDTO(&rows[i])
	}
	return dtos
}
