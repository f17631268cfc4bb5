package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/internal/pricing"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

// Service exposes the working cart operations. There is exactly one active
// cart at a time; committing it opens the way for the next one.
type Service interface {
	GetActiveCart(ctx context.Context) (*CartDTO, error)
	AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, productID uuid.UUID) (*CartDTO, error)
	SetCustomer(ctx context.Context, input CustomerInput) (*CartDTO, error)
	SetDiscount(ctx context.Context, percentage decimal.Decimal) (*CartDTO, error)
	ClearCart(ctx context.Context) (*CartDTO, error)
	Quote(ctx context.Context) (*QuoteDTO, error)
	BuildQuote(ctx context.Context) (*models.CartRecord, *pricing.Quote, []uuid.UUID, error)
}

// CustomerInput captures the buyer details stamped onto the invoice later.
type CustomerInput struct {
	Name    string
	Phone   *string
	Address *string
	GSTIN   *string
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
	logg        *logger.Logger
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, catalogRepo *catalog.Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, catalogRepo: catalogRepo, logg: logg}, nil
}

// GetActiveCart returns the working cart, creating it on first use.
func (s *service) GetActiveCart(ctx context.Context) (*CartDTO, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, cart)
}

// AddItem appends a product line, merging quantities when the product is
// already in the cart.
func (s *service) AddItem(ctx context.Context, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		if _, err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item")
		}
	case db.IsNotFound(err):
		position, err := s.repo.NextPosition(ctx, cart.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "computing item position")
		}
		item := &models.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Position:  position,
		}
		if _, err := s.repo.CreateItem(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart item")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	return s.reload(ctx, cart.ID)
}

// UpdateItemQuantity sets the absolute quantity for a line. Zero removes it.
func (s *service) UpdateItemQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, productID)
	}

	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	item.Quantity = quantity
	if _, err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart item")
	}
	return s.reload(ctx, cart.ID)
}

// RemoveItem drops a product line from the cart.
func (s *service) RemoveItem(ctx context.Context, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItem(ctx, cart.ID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting cart item")
	}
	return s.reload(ctx, cart.ID)
}

// SetCustomer stamps buyer details onto the cart.
func (s *service) SetCustomer(ctx context.Context, input CustomerInput) (*CartDTO, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	cart.CustomerName = input.Name
	cart.CustomerPhone = input.Phone
	cart.CustomerAddress = input.Address
	cart.CustomerGSTIN = input.GSTIN

	if _, err := s.repo.Update(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart")
	}
	return s.reload(ctx, cart.ID)
}

// SetDiscount stores the cart-level discount percentage.
func (s *service) SetDiscount(ctx context.Context, percentage decimal.Decimal) (*CartDTO, error) {
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}

	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	cart.DiscountPercentage = percentage
	if _, err := s.repo.Update(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart")
	}
	return s.reload(ctx, cart.ID)
}

// ClearCart empties the cart and resets customer and discount state.
func (s *service) ClearCart(ctx context.Context) (*CartDTO, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteItems(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart items")
	}

	cart.CustomerName = ""
	cart.CustomerPhone = nil
	cart.CustomerAddress = nil
	cart.CustomerGSTIN = nil
	cart.DiscountPercentage = decimal.Zero
	if _, err := s.repo.Update(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resetting cart")
	}

	s.logg.Info(s.logg.WithField(ctx, "cart_id", cart.ID.String()), "cart cleared")
	return s.reload(ctx, cart.ID)
}

// Quote prices the active cart. Lines pointing at deleted catalog entries are
// dropped from the quote and reported in the response.
func (s *service) Quote(ctx context.Context) (*QuoteDTO, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	lines, dropped, err := s.buildLines(ctx, cart)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Compute(lines, cart.DiscountPercentage)
	if err != nil {
		return nil, err
	}
	return newQuoteDTO(cart.ID, quote, dropped), nil
}

// BuildQuote resolves the cart and its priced lines for order commit. The
// orders service calls this and then snapshots the result.
func (s *service) BuildQuote(ctx context.Context) (*models.CartRecord, *pricing.Quote, []uuid.UUID, error) {
	cart, err := s.loadOrCreate(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	lines, dropped, err := s.buildLines(ctx, cart)
	if err != nil {
		return nil, nil, nil, err
	}

	quote, err := pricing.Compute(lines, cart.DiscountPercentage)
	if err != nil {
		return nil, nil, nil, err
	}
	return cart, quote, dropped, nil
}

func (s *service) buildLines(ctx context.Context, cart *models.CartRecord) ([]pricing.LineInput, []uuid.UUID, error) {
	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]pricing.LineInput, 0, len(cart.Items))
	var dropped []uuid.UUID
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			dropped = append(dropped, item.ProductID)
			continue
		}
		lines = append(lines, pricing.LineInput{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      item.Quantity,
			UnitPrice:     product.SellingPrice,
			GSTPercentage: product.GSTPercentage,
		})
	}
	return lines, dropped, nil
}

func (s *service) loadOrCreate(ctx context.Context) (*models.CartRecord, error) {
	cart, err := s.repo.FindActive(ctx)
	if err == nil {
		return cart, nil
	}
	if !db.IsNotFound(err) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading active cart")
	}

	created, err := s.repo.Create(ctx, &models.CartRecord{
		ID:                 uuid.New(),
		Status:             enums.CartStatusActive,
		DiscountPercentage: decimal.Zero,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}

	s.logg.Info(s.logg.WithField(ctx, "cart_id", created.ID.String()), "cart opened")
	return created, nil
}

func (s *service) reload(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading cart")
	}
	return s.toDTO(ctx, cart)
}

func (s *service) toDTO(ctx context.Context, cart *models.CartRecord) (*CartDTO, error) {
	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}
	return newCartDTO(cart, products), nil
}

func (s *service) loadProducts(ctx context.Context, cart *models.CartRecord) (map[uuid.UUID]models.Product, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	rows, err := s.catalogRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart products")
	}

	products := make(map[uuid.UUID]models.Product, len(rows))
	for _, row := range rows {
		products[row.ID] = row
	}
	return products, nil
}
