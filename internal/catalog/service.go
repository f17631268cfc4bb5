package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error)
	ListLowStock(ctx context.Context) ([]ProductDTO, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU           string
	Name          string
	Description   *string
	Category      enums.ProductCategory
	Unit          enums.ProductUnit
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	GSTPercentage decimal.Decimal
	StockQuantity int
	MinThreshold  int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU           *string
	Name          *string
	Description   *string
	Category      *enums.ProductCategory
	Unit          *enums.ProductUnit
	CostPrice     *decimal.Decimal
	SellingPrice  *decimal.Decimal
	GSTPercentage *decimal.Decimal
	MinThreshold  *int
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func validatePricing(cost, selling, gst decimal.Decimal) error {
	if cost.IsNegative() || selling.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices cannot be negative")
	}
	if gst.IsNegative() || gst.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "gst percentage must be between 0 and 100")
	}
	return nil
}

// CreateProduct inserts a catalog entry after enum and pricing validation.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.SKU == "" || input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku and name are required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product unit")
	}
	if err := validatePricing(input.CostPrice, input.SellingPrice, input.GSTPercentage); err != nil {
		return nil, err
	}
	if input.StockQuantity < 0 || input.MinThreshold < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantities cannot be negative")
	}

	product := &models.Product{
		ID:            uuid.New(),
		SKU:           input.SKU,
		Name:          input.Name,
		Description:   input.Description,
		Category:      input.Category,
		Unit:          input.Unit,
		CostPrice:     input.CostPrice,
		SellingPrice:  input.SellingPrice,
		GSTPercentage: input.GSTPercentage,
		StockQuantity: input.StockQuantity,
		MinThreshold:  input.MinThreshold,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}

	ctx = s.logg.WithProductID(ctx, created.ID.String())
	s.logg.Info(ctx, "product created")
	return NewProductDTO(created), nil
}

// UpdateProduct applies a partial mutation to the catalog entry.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	if input.SKU != nil {
		if *input.SKU == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
		}
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
		}
		product.Category = *input.Category
	}
	if input.Unit != nil {
		if !input.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product unit")
		}
		product.Unit = *input.Unit
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.GSTPercentage != nil {
		product.GSTPercentage = *input.GSTPercentage
	}
	if err := validatePricing(product.CostPrice, product.SellingPrice, product.GSTPercentage); err != nil {
		return nil, err
	}
	if input.MinThreshold != nil {
		if *input.MinThreshold < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min threshold cannot be negative")
		}
		product.MinThreshold = *input.MinThreshold
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return NewProductDTO(updated), nil
}

// DeleteProduct removes the catalog entry. Past orders keep their snapshots,
// so history is unaffected.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}

	ctx = s.logg.WithProductID(ctx, productID.String())
	s.logg.Info(ctx, "product deleted")
	return nil
}

// GetProduct loads one catalog entry.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return NewProductDTO(product), nil
}

// ListProducts returns the filtered catalog.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]ProductDTO, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product category")
	}
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return NewProductDTOs(products), nil
}

// ListLowStock returns products at or below their reorder threshold.
func (s *service) ListLowStock(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing low stock products")
	}
	return NewProductDTOs(products), nil
}

// AdjustStock applies a manual stock delta, e.g. receiving a delivery or
// writing off damaged goods.
func (s *service) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) (*ProductDTO, error) {
	if delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta cannot be zero")
	}

	applied, err := s.repo.ApplyStockDelta(ctx, productID, delta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adjusting stock")
	}
	if !applied {
		product, err := s.repo.FindByID(ctx, productID)
		if err != nil {
			if db.IsNotFound(err) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
		}
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "stock cannot go negative").
			WithDetails(map[string]any{
				"product_id": productID,
				"available":  product.StockQuantity,
				"requested":  -delta,
			})
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading product")
	}

	ctx = s.logg.WithProductID(ctx, productID.String())
	s.logg.Info(ctx, "stock adjusted")
	return NewProductDTO(product), nil
}
