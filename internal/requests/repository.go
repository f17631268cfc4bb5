package requests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
)

// Repository wires together supply request persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a supply request with its vendor and product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SupplyRequest, error) {
	var request models.SupplyRequest
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Product").
		First(&request, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListFilter narrows the supply request listing.
type ListFilter struct {
	VendorID *uuid.UUID
	Status   *enums.SupplyRequestStatus
}

// List returns supply requests newest first, optionally filtered.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.SupplyRequest, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SupplyRequest{}).
		Preload("Vendor").
		Preload("Product")
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var rows []models.SupplyRequest
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new supply request row.
func (r *Repository) Create(ctx context.Context, request *models.SupplyRequest) (*models.SupplyRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// Update saves the supply request row. Associations are omitted so preloaded
// vendor and product rows are never written back.
func (r *Repository) Update(ctx context.Context, request *models.SupplyRequest) (*models.SupplyRequest, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}
