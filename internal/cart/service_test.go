package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

type testEnv struct {
	svc  Service
	conn *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}, &models.CartRecord{}, &models.CartItem{}))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), catalog.NewRepository(conn), logg)
	require.NoError(t, err)
	return &testEnv{svc: svc, conn: conn}
}

func (e *testEnv) mustCreateProduct(t *testing.T, name, price, gst string) *models.Product {
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
		StockQuantity: 100,
	}
	require.NoError(t, e.conn.Create(product).Error)
	return product
}

func TestGetActiveCartCreatesOnce(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.svc.GetActiveCart(context.Background())
	require.NoError(t, err)
	require.Equal(t, "active", first.Status)
	require.Empty(t, first.Items)

	second, err := env.svc.GetActiveCart(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}

func TestAddItemMergesQuantities(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	dto, err := env.svc.AddItem(context.Background(), product.ID, 2)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 2, dto.Items[0].Quantity)
	require.Equal(t, 1, dto.Items[0].Position)

	dto, err = env.svc.AddItem(context.Background(), product.ID, 3)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 5, dto.Items[0].Quantity)
}

func TestAddItemValidations(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	_, err := env.svc.AddItem(context.Background(), product.ID, 0)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = env.svc.AddItem(context.Background(), uuid.New(), 1)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddItemPreservesPositions(t *testing.T) {
	env := newTestEnv(t)
	first := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")
	second := env.mustCreateProduct(t, "Notebook A5", "50", "12")

	_, err := env.svc.AddItem(context.Background(), first.ID, 1)
	require.NoError(t, err)
	dto, err := env.svc.AddItem(context.Background(), second.ID, 1)
	require.NoError(t, err)

	require.Len(t, dto.Items, 2)
	require.Equal(t, first.ID, dto.Items[0].ProductID)
	require.Equal(t, second.ID, dto.Items[1].ProductID)
	require.Equal(t, 2, dto.Items[1].Position)
}

func TestUpdateItemQuantity(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	_, err := env.svc.AddItem(context.Background(), product.ID, 2)
	require.NoError(t, err)

	dto, err := env.svc.UpdateItemQuantity(context.Background(), product.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 7, dto.Items[0].Quantity)

	// zero removes the line
	dto, err = env.svc.UpdateItemQuantity(context.Background(), product.ID, 0)
	require.NoError(t, err)
	require.Empty(t, dto.Items)

	_, err = env.svc.UpdateItemQuantity(context.Background(), product.ID, -1)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = env.svc.UpdateItemQuantity(context.Background(), product.ID, 5)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	_, err := env.svc.AddItem(context.Background(), product.ID, 2)
	require.NoError(t, err)

	dto, err := env.svc.RemoveItem(context.Background(), product.ID)
	require.NoError(t, err)
	require.Empty(t, dto.Items)

	_, err = env.svc.RemoveItem(context.Background(), product.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestSetCustomerAndDiscount(t *testing.T) {
	env := newTestEnv(t)

	phone := "+91-9811000000"
	dto, err := env.svc.SetCustomer(context.Background(), CustomerInput{
		Name:  "Ramesh Kumar",
		Phone: &phone,
	})
	require.NoError(t, err)
	require.Equal(t, "Ramesh Kumar", dto.CustomerName)
	require.Equal(t, phone, *dto.CustomerPhone)

	dto, err = env.svc.SetDiscount(context.Background(), decimal.RequireFromString("10"))
	require.NoError(t, err)
	require.True(t, dto.DiscountPercentage.Equal(decimal.RequireFromString("10")))

	_, err = env.svc.SetDiscount(context.Background(), decimal.RequireFromString("101"))
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	_, err := env.svc.AddItem(context.Background(), product.ID, 2)
	require.NoError(t, err)
	_, err = env.svc.SetCustomer(context.Background(), CustomerInput{Name: "Ramesh Kumar"})
	require.NoError(t, err)
	_, err = env.svc.SetDiscount(context.Background(), decimal.RequireFromString("5"))
	require.NoError(t, err)

	dto, err := env.svc.ClearCart(context.Background())
	require.NoError(t, err)
	require.Empty(t, dto.Items)
	require.Empty(t, dto.CustomerName)
	require.True(t, dto.DiscountPercentage.IsZero())
}

func TestQuote(t *testing.T) {
	env := newTestEnv(t)
	product := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")

	_, err := env.svc.AddItem(context.Background(), product.ID, 3)
	require.NoError(t, err)
	_, err = env.svc.SetDiscount(context.Background(), decimal.RequireFromString("10"))
	require.NoError(t, err)

	quote, err := env.svc.Quote(context.Background())
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	require.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("300")))
	require.True(t, quote.DiscountAmount.Equal(decimal.RequireFromString("30")))
	require.True(t, quote.TotalGST.Equal(decimal.RequireFromString("48.6")))
	require.True(t, quote.GrandTotal.Equal(decimal.RequireFromString("318.6")))
}

func TestQuoteDropsDanglingLines(t *testing.T) {
	env := newTestEnv(t)
	keep := env.mustCreateProduct(t, "Copper Wire 2mm", "100", "18")
	gone := env.mustCreateProduct(t, "Notebook A5", "50", "12")

	_, err := env.svc.AddItem(context.Background(), keep.ID, 1)
	require.NoError(t, err)
	_, err = env.svc.AddItem(context.Background(), gone.ID, 1)
	require.NoError(t, err)

	require.NoError(t, env.conn.Delete(&models.Product{}, "id = ?", gone.ID).Error)

	quote, err := env.svc.Quote(context.Background())
	require.NoError(t, err)
	require.Len(t, quote.Lines, 1)
	require.Equal(t, keep.ID, quote.Lines[0].ProductID)
	require.Equal(t, []uuid.UUID{gone.ID}, quote.DroppedProductIDs)
	require.True(t, quote.TotalAmount.Equal(decimal.RequireFromString("100")))
}

func TestQuoteEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	quote, err := env.svc.Quote(context.Background())
	require.NoError(t, err)
	require.Empty(t, quote.Lines)
	require.True(t, quote.GrandTotal.IsZero())
}
