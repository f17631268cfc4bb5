package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// Repository wires together operator persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUsername loads an operator by login name.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var operator models.Operator
	if err := r.db.WithContext(ctx).First(&operator, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &operator, nil
}

// Create inserts a new operator row.
func (r *Repository) Create(ctx context.Context, operator *models.Operator) (*models.Operator, error) {
	if err := r.db.WithContext(ctx).Create(operator).Error; err != nil {
		return nil, err
	}
	return operator, nil
}

// Count returns the number of operator rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Operator{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
