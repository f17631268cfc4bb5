package vendors

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Vendor{}, &models.Product{}, &models.SupplyRequest{}))

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(NewRepository(conn), logg)
	require.NoError(t, err)
	return svc, conn
}

func strPtr(v string) *string { return &v }

func TestCreateAndGetVendor(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateVendor(context.Background(), CreateVendorInput{
		Name:  "Sharma Traders",
		Phone: strPtr("+91-9811000000"),
		GSTIN: strPtr("07AABCS1429B1Z1"),
	})
	require.NoError(t, err)
	require.True(t, created.IsActive)

	fetched, err := svc.GetVendor(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "Sharma Traders", fetched.Name)
	require.Equal(t, "+91-9811000000", *fetched.Phone)
	require.Nil(t, fetched.Email)
}

func TestCreateVendorRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateVendor(context.Background(), CreateVendorInput{})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateVendor(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateVendor(context.Background(), CreateVendorInput{Name: "Sharma Traders"})
	require.NoError(t, err)

	updated, err := svc.UpdateVendor(context.Background(), created.ID, UpdateVendorInput{
		Name:  strPtr("Sharma & Sons"),
		Email: strPtr("sales@sharma.example"),
	})
	require.NoError(t, err)
	require.Equal(t, "Sharma & Sons", updated.Name)
	require.Equal(t, "sales@sharma.example", *updated.Email)
}

func TestVendorNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetVendor(context.Background(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeactivateVendor(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateVendor(context.Background(), CreateVendorInput{Name: "Sharma Traders"})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateVendor(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, deactivated.IsActive)

	active, err := svc.ListVendors(context.Background(), true)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := svc.ListVendors(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDeactivateVendorBlockedByOpenRequests(t *testing.T) {
	svc, conn := newTestService(t)

	created, err := svc.CreateVendor(context.Background(), CreateVendorInput{Name: "Sharma Traders"})
	require.NoError(t, err)

	request := &models.SupplyRequest{
		ID:        uuid.New(),
		VendorID:  created.ID,
		ProductID: uuid.New(),
		Quantity:  10,
		Status:    enums.SupplyRequestStatusPending,
	}
	require.NoError(t, conn.Create(request).Error)

	_, err = svc.DeactivateVendor(context.Background(), created.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}
