package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/internal/cart"
	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
)

// Service exposes order commit and lookup operations.
type Service interface {
	CommitOrder(ctx context.Context) (*OrderDTO, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]OrderDTO, error)
}

type service struct {
	repo        *Repository
	cartSvc     cart.Service
	cartRepo    *cart.Repository
	catalogRepo *catalog.Repository
	dbClient    *db.Client
	metrics     *metrics.OrderMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs an order service instance.
func NewService(
	repo *Repository,
	cartSvc cart.Service,
	cartRepo *cart.Repository,
	catalogRepo *catalog.Repository,
	dbClient *db.Client,
	orderMetrics *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		cartSvc:     cartSvc,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		dbClient:    dbClient,
		metrics:     orderMetrics,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// CommitOrder freezes the active cart into an immutable order. Stock is
// decremented with guarded updates inside the same transaction that writes
// the snapshot, so a failed line leaves nothing behind.
func (s *service) CommitOrder(ctx context.Context) (*OrderDTO, error) {
	cartRecord, quote, _, err := s.cartSvc.BuildQuote(ctx)
	if err != nil {
		s.metrics.IncCommitFailure("quote")
		return nil, err
	}
	if len(quote.Lines) == 0 {
		s.metrics.IncCommitFailure("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no purchasable items")
	}
	customerName := strings.TrimSpace(cartRecord.CustomerName)
	if customerName == "" {
		s.metrics.IncCommitFailure("missing_customer")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	commitTime := s.now()
	order := &models.Order{
		ID:                 uuid.New(),
		InvoiceNumber:      newInvoiceNumber(commitTime),
		Date:               commitTime,
		CustomerName:       customerName,
		CustomerPhone:      cartRecord.CustomerPhone,
		CustomerAddress:    cartRecord.CustomerAddress,
		CustomerGSTIN:      cartRecord.CustomerGSTIN,
		TotalAmount:        quote.TotalAmount,
		DiscountPercentage: quote.DiscountPercentage,
		DiscountAmount:     quote.DiscountAmount,
		TotalGST:           quote.TotalGST,
		GrandTotal:         quote.GrandTotal,
	}
	for i, line := range quote.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			GSTPercentage: line.GSTPercentage,
			Subtotal:      line.Subtotal,
			TotalWithGST:  line.TotalWithGST,
			Position:      i + 1,
		})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txCatalog := s.catalogRepo.WithTx(tx)
		for _, line := range quote.Lines {
			applied, err := txCatalog.ApplyStockDelta(ctx, line.ProductID, -line.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrementing stock")
			}
			if !applied {
				available := 0
				if product, err := txCatalog.FindByID(ctx, line.ProductID); err == nil {
					available = product.StockQuantity
				}
				return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for product").
					WithDetails(map[string]any{
						"product_id":   line.ProductID,
						"product_name": line.ProductName,
						"requested":    line.Quantity,
						"available":    available,
					})
			}
		}

		if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing order snapshot")
		}

		converted, err := s.cartRepo.WithTx(tx).MarkConverted(ctx, cartRecord.ID, commitTime)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "converting cart")
		}
		if !converted {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart already committed")
		}
		return nil
	})
	if err != nil {
		s.metrics.IncCommitFailure(failureReason(err))
		return nil, err
	}

	grandTotal, _ := order.GrandTotal.Float64()
	s.metrics.IncCommit(grandTotal)

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	ctx = s.logg.WithInvoiceNumber(ctx, order.InvoiceNumber)
	s.logg.Info(ctx, "order committed")

	return s.GetOrder(ctx, order.ID)
}

// GetOrder loads one committed order.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return NewOrderDTO(order), nil
}

// ListOrders returns committed orders newest first.
func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]OrderDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return NewOrderDTOs(rows), nil
}

// newInvoiceNumber derives a human-scannable invoice number from a single
// clock read. The unique index on invoice_number backstops collisions.
func newInvoiceNumber(at time.Time) string {
	return fmt.Sprintf("INV-%s-%09d", at.Format("20060102"), at.UnixNano()%1_000_000_000)
}

func failureReason(err error) string {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		return "internal"
	}
	switch appErr.Code() {
	case pkgerrors.CodeInsufficientStock:
		return "insufficient_stock"
	case pkgerrors.CodeConflict:
		return "cart_conflict"
	case pkgerrors.CodeValidation:
		return "validation"
	default:
		return "internal"
	}
}
