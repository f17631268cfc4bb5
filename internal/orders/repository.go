package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
)

// Repository wires together order persistence helpers.
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

// Create inserts the order header and its item snapshots in one go.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
		return nil, err
	}
	if len(order.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&order.Items).Error; err != nil {
			return nil, err
		}
	}
	return order, nil
}

// FindByID loads an order with its line snapshots, ordered by position.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByInvoiceNumber loads an order by its invoice number.
func (r *Repository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&order, "invoice_number = ?", invoiceNumber).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListFilter narrows the order listing by date range.
type ListFilter struct {
	From *time.Time
	To   *time.Time
}

// List returns orders newest first, optionally bounded by date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var rows []models.Order
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
