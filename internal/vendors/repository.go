package vendors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// Repository wires together vendor persistence helpers.
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

// FindByID loads a vendor by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List returns vendors ordered by name. When activeOnly is set, deactivated
// vendors are excluded.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Vendor, error) {
	query := r.db.WithContext(ctx).Model(&models.Vendor{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.Vendor
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new vendor row.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// Update saves the full vendor row.
func (r *Repository) Update(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Save(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

// CountOpenSupplyRequests counts supply requests for the vendor that are not
// yet resolved.
func (r *Repository) CountOpenSupplyRequests(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SupplyRequest{}).
		Where("vendor_id = ? AND status IN ?", vendorID, []string{"pending", "approved", "ordered"}).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
