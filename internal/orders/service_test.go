package orders

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/internal/cart"
	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
)

type testEnv struct {
	svc     Service
	cartSvc cart.Service
	conn    *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.CartRecord{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	catalogRepo := catalog.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)

	cartSvc, err := cart.NewService(cartRepo, catalogRepo, logg)
	require.NoError(t, err)

	svc, err := NewService(
		NewRepository(conn),
		cartSvc,
		cartRepo,
		catalogRepo,
		db.NewWithConn(conn),
		metrics.NewOrderMetrics(nil),
		logg,
	)
	require.NoError(t, err)

	return &testEnv{svc: svc, cartSvc: cartSvc, conn: conn}
}

func (e *testEnv) mustCreateProduct(t *testing.T, name, price, gst string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		SKU:           "SKU-" + uuid.NewString(),
		Name:          name,
		Category:      enums.ProductCategoryOther,
		Unit:          enums.ProductUnitPiece,
		CostPrice:     decimal.RequireFromString(price),
		SellingPrice:  decimal.RequireFromString(price),
		GSTPercentage: decimal.RequireFromString(gst),
		StockQuantity: stock,
	}
	require.NoError(t, e.conn.Create(product).Error)
	return product
}

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{8}-\d{9}$`)

func TestCommitOrder(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18", 50)

	_, err := env.cartSvc.AddItem(context.Background(), product.ID, 3)
	require.NoError(t, err)
	_, err = env.cartSvc.SetDiscount(context.Background(), decimal.RequireFromString("10"))
	require.NoError(t, err)
	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "Ramesh Kumar"})
	require.NoError(t, err)

	order, err := env.svc.CommitOrder(context.Background())
	require.NoError(t, err)

	require.Regexp(t, invoiceNumberPattern, order.InvoiceNumber)
	require.Equal(t, "Ramesh Kumar", order.CustomerName)
	require.True(t, order.TotalAmount.Equal(decimal.RequireFromString("300")))
	require.True(t, order.DiscountAmount.Equal(decimal.RequireFromString("30")))
	require.True(t, order.TotalGST.Equal(decimal.RequireFromString("48.6")))
	require.True(t, order.GrandTotal.Equal(decimal.RequireFromString("318.6")))
	require.Len(t, order.Items, 1)
	require.Equal(t, "Copper Wire 2mm", order.Items[0].ProductName)
	require.Equal(t, 1, order.Items[0].Position)

	// stock decremented
	var reloaded models.Product
	require.NoError(t, env.conn.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 47, reloaded.StockQuantity)

	// commit opens a fresh cart
	next, err := env.cartSvc.GetActiveCart(context.Background())
	require.NoError(t, err)
	require.Empty(t, next.Items)
	require.Empty(t, next.CustomerName)
}

func TestCommitOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CommitOrder(context.Background())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCommitOrderBlankCustomerName(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18", 50)

	_, err := env.cartSvc.AddItem(context.Background(), product.ID, 1)
	require.NoError(t, err)

	_, err = env.svc.CommitOrder(context.Background())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// a whitespace-only name is just as missing
	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "   "})
	require.NoError(t, err)

	_, err = env.svc.CommitOrder(context.Background())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	// stock and cart untouched
	var reloaded models.Product
	require.NoError(t, env.conn.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 50, reloaded.StockQuantity)

	active, err := env.cartSvc.GetActiveCart(context.Background())
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
}

func TestCommitOrderInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	plenty := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18", 50)
	scarce := env.mustCreateProduct(t, "Notebook A5", "50", "12", 2)

	_, err := env.cartSvc.AddItem(context.Background(), plenty.ID, 3)
	require.NoError(t, err)
	_, err = env.cartSvc.AddItem(context.Background(), scarce.ID, 5)
	require.NoError(t, err)
	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "Ramesh Kumar"})
	require.NoError(t, err)

	_, err = env.svc.CommitOrder(context.Background())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeInsufficientStock, appErr.Code())

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	require.Equal(t, scarce.ID, details["product_id"])
	require.Equal(t, 5, details["requested"])
	require.Equal(t, 2, details["available"])

	// nothing written, nothing decremented
	var orderCount int64
	require.NoError(t, env.conn.Model(&models.Order{}).Count(&orderCount).Error)
	require.Zero(t, orderCount)

	var reloaded models.Product
	require.NoError(t, env.conn.First(&reloaded, "id = ?", plenty.ID).Error)
	require.Equal(t, 50, reloaded.StockQuantity)

	active, err := env.cartSvc.GetActiveCart(context.Background())
	require.NoError(t, err)
	require.Len(t, active.Items, 2)
}

func TestCommitOrderSkipsDanglingLines(t *testing.T) {
	env := newTestEnv(t)
	keep := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18", 50)
	gone := env.mustCreateProduct(t, "Notebook A5", "50", "12", 50)

	_, err := env.cartSvc.AddItem(context.Background(), keep.ID, 1)
	require.NoError(t, err)
	_, err = env.cartSvc.AddItem(context.Background(), gone.ID, 1)
	require.NoError(t, err)

	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "Ramesh Kumar"})
	require.NoError(t, err)

	require.NoError(t, env.conn.Delete(&models.Product{}, "id = ?", gone.ID).Error)

	order, err := env.svc.CommitOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, keep.ID, order.Items[0].ProductID)
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListOrdersByDateRange(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18", 50)

	_, err := env.cartSvc.AddItem(context.Background(), product.ID, 1)
	require.NoError(t, err)
	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "Ramesh Kumar"})
	require.NoError(t, err)
	first, err := env.svc.CommitOrder(context.Background())
	require.NoError(t, err)

	_, err = env.cartSvc.AddItem(context.Background(), product.ID, 2)
	require.NoError(t, err)
	_, err = env.cartSvc.SetCustomer(context.Background(), cart.CustomerInput{Name: "Suresh Patel"})
	require.NoError(t, err)
	second, err := env.svc.CommitOrder(context.Background())
	require.NoError(t, err)

	all, err := env.svc.ListOrders(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	future := time.Now().Add(time.Hour)
	none, err := env.svc.ListOrders(context.Background(), ListFilter{From: &future})
	require.NoError(t, err)
	require.Empty(t, none)

	ids := []uuid.UUID{all[0].ID, all[1].ID}
	require.Contains(t, ids, first.ID)
	require.Contains(t, ids, second.ID)
}

func TestInvoiceNumberFormat(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	number := newInvoiceNumber(at)
	require.Equal(t, "INV-20260314-535897932", number)
}
