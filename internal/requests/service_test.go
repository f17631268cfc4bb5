package requests

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
	"github.com/udyoglabs/dukaan-backend/internal/vendors"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
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
	require.NoError(t, conn.AutoMigrate(&models.Vendor{}, &models.Product{}, &models.SupplyRequest{}))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(
		NewRepository(conn),
		catalog.NewRepository(conn),
		vendors.NewRepository(conn),
		db.NewWithConn(conn),
		logg,
	)
	require.NoError(t, err)
	return &testEnv{svc: svc, conn: conn}
}

func (e *testEnv) mustCreateVendor(t *testing.T, active bool) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		ID:       uuid.New(),
		Name:     "Sharma Traders",
		IsActive: active,
	}
	require.NoError(t, e.conn.Create(vendor).Error)
	return vendor
}

func (e *testEnv) mustCreateProduct(t *testing.T, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:            uuid.New(),
		SKU:           "SKU-" + uuid.NewString(),
		Name:          "Copper Wire 2mm",
		Category:      enums.ProductCategoryElectrical,
		Unit:          enums.ProductUnitMetre,
		CostPrice:     decimal.RequireFromString("80"),
		SellingPrice:  decimal.RequireFromString("100"),
		GSTPercentage: decimal.RequireFromString("18"),
		StockQuantity: stock,
	}
	require.NoError(t, e.conn.Create(product).Error)
	return product
}

func TestCreateRequest(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	dto, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID:  vendor.ID,
		ProductID: product.ID,
		Quantity:  40,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", dto.Status)
	require.Equal(t, vendor.Name, dto.VendorName)
	require.Equal(t, product.SKU, dto.ProductSKU)
}

func TestCreateRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	_, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: product.ID, Quantity: 0,
	})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: uuid.New(), ProductID: product.ID, Quantity: 1,
	})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	_, err = env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: uuid.New(), Quantity: 1,
	})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCreateRequestRejectsInactiveVendor(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, false)
	product := env.mustCreateProduct(t, 5)

	_, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: product.ID, Quantity: 1,
	})
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestUpdateStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	created, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: product.ID, Quantity: 40,
	})
	require.NoError(t, err)

	for _, next := range []enums.SupplyRequestStatus{
		enums.SupplyRequestStatusApproved,
		enums.SupplyRequestStatusOrdered,
		enums.SupplyRequestStatusReceived,
	} {
		dto, err := env.svc.UpdateStatus(context.Background(), created.ID, next)
		require.NoError(t, err)
		require.Equal(t, next.String(), dto.Status)
	}

	// receiving books the quantity into stock
	var reloaded models.Product
	require.NoError(t, env.conn.First(&reloaded, "id = ?", product.ID).Error)
	require.Equal(t, 45, reloaded.StockQuantity)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	created, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: product.ID, Quantity: 40,
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), created.ID, enums.SupplyRequestStatusReceived)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())

	details, ok := appErr.Details().(map[string]any)
	require.True(t, ok)
	require.Equal(t, "pending", details["current"])
	require.Equal(t, "received", details["requested"])
}

func TestUpdateStatusTerminalStates(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	created, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendor.ID, ProductID: product.ID, Quantity: 40,
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), created.ID, enums.SupplyRequestStatusCancelled)
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), created.ID, enums.SupplyRequestStatusApproved)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestListRequestsFilters(t *testing.T) {
	env := newTestEnv(t)
	vendorA := env.mustCreateVendor(t, true)
	vendorB := env.mustCreateVendor(t, true)
	product := env.mustCreateProduct(t, 5)

	first, err := env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendorA.ID, ProductID: product.ID, Quantity: 10,
	})
	require.NoError(t, err)
	_, err = env.svc.CreateRequest(context.Background(), CreateRequestInput{
		VendorID: vendorB.ID, ProductID: product.ID, Quantity: 20,
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), first.ID, enums.SupplyRequestStatusApproved)
	require.NoError(t, err)

	all, err := env.svc.ListRequests(context.Background(), ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	approved := enums.SupplyRequestStatusApproved
	filtered, err := env.svc.ListRequests(context.Background(), ListFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, first.ID, filtered[0].ID)

	byVendor, err := env.svc.ListRequests(context.Background(), ListFilter{VendorID: &vendorB.ID})
	require.NoError(t, err)
	require.Len(t, byVendor, 1)
	require.Equal(t, vendorB.ID, byVendor[0].VendorID)
}
