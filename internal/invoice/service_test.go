package invoice

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/internal/orders"
	"github.com/udyoglabs/dukaan-backend/pkg/config"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
)

type stubFetcher struct {
	assets Assets
	err    error
	calls  int
}

func (s *stubFetcher) Fetch(ctx context.Context) (Assets, error) {
	s.calls++
	return s.assets, s.err
}

func newServiceTestEnv(t *testing.T, fetcher *stubFetcher) (Service, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Order{}, &models.OrderItem{}))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(
		orders.NewRepository(conn),
		fetcher,
		nil,
		config.InvoiceConfig{
			IssuerName:    "Dukaan Traders",
			IssuerTagline: "Quality since 1994",
			CacheTTL:      time.Hour,
		},
		metrics.NewOrderMetrics(nil),
		logg,
	)
	require.NoError(t, err)
	return svc, conn
}

func mustCreateOrder(t *testing.T, conn *gorm.DB) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260314-535897932",
		Date:          time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		CustomerName:  "Ramesh Kumar",
		TotalAmount:   decimal.RequireFromString("300"),
		DiscountAmount: decimal.RequireFromString("30"),
		DiscountPercentage: decimal.RequireFromString("10"),
		TotalGST:      decimal.RequireFromString("48.6"),
		GrandTotal:    decimal.RequireFromString("318.6"),
	}
	require.NoError(t, conn.Create(order).Error)

	item := &models.OrderItem{
		ID:            uuid.New(),
		OrderID:       order.ID,
		ProductID:     uuid.New(),
		ProductName:   "Copper Wire 2mm",
		Quantity:      3,
		UnitPrice:     decimal.RequireFromString("100"),
		GSTPercentage: decimal.RequireFromString("18"),
		Subtotal:      decimal.RequireFromString("300"),
		TotalWithGST:  decimal.RequireFromString("354"),
		Position:      1,
	}
	require.NoError(t, conn.Create(item).Error)
	return order
}

func TestGetInvoice(t *testing.T) {
	fetcher := &stubFetcher{}
	svc, conn := newServiceTestEnv(t, fetcher)
	order := mustCreateOrder(t, conn)

	doc, err := svc.GetInvoice(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.InvoiceNumber, doc.InvoiceNumber)
	require.Equal(t, "Ramesh Kumar", doc.GeneratedFor)
	require.NotEmpty(t, doc.Blocks)
	require.Equal(t, 1, fetcher.calls)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _ := newServiceTestEnv(t, &stubFetcher{})

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetInvoiceSurvivesAssetFailure(t *testing.T) {
	fetcher := &stubFetcher{
		assets: Assets{Missing: []string{AssetLogo}},
		err:    pkgerrors.New(pkgerrors.CodeAssetUnavailable, "logo fetch failed"),
	}
	svc, conn := newServiceTestEnv(t, fetcher)
	order := mustCreateOrder(t, conn)

	doc, err := svc.GetInvoice(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, []string{AssetLogo}, doc.MissingAssets)
}
