package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/udyoglabs/dukaan-backend/internal/catalog"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

// Service exposes supply request lifecycle operations.
type Service interface {
	CreateRequest(ctx context.Context, input CreateRequestInput) (*SupplyRequestDTO, error)
	GetRequest(ctx context.Context, requestID uuid.UUID) (*SupplyRequestDTO, error)
	ListRequests(ctx context.Context, filter ListFilter) ([]SupplyRequestDTO, error)
	UpdateStatus(ctx context.Context, requestID uuid.UUID, next enums.SupplyRequestStatus) (*SupplyRequestDTO, error)
}

// CreateRequestInput holds the validated payload to raise a supply request.
type CreateRequestInput struct {
	VendorID     uuid.UUID
	ProductID    uuid.UUID
	Quantity     int
	ExpectedDate *time.Time
	Notes        *string
}

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
	vendorRepo  vendorLoader
	dbClient    *db.Client
	logg        *logger.Logger
}

// NewService constructs a supply request service instance.
func NewService(repo *Repository, catalogRepo *catalog.Repository, vendorRepo vendorLoader, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supply request repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		vendorRepo:  vendorRepo,
		dbClient:    dbClient,
		logg:        logg,
	}, nil
}

// CreateRequest raises a pending restock request against an active vendor.
func (s *service) CreateRequest(ctx context.Context, input CreateRequestInput) (*SupplyRequestDTO, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	vendor, err := s.vendorRepo.FindByID(ctx, input.VendorID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vendor")
	}
	if !vendor.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor is deactivated")
	}

	if _, err := s.catalogRepo.FindByID(ctx, input.ProductID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	request := &models.SupplyRequest{
		ID:           uuid.New(),
		VendorID:     input.VendorID,
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		ExpectedDate: input.ExpectedDate,
		Status:       enums.SupplyRequestStatusPending,
		Notes:        input.Notes,
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating supply request")
	}

	s.logg.Info(s.logg.WithField(ctx, "supply_request_id", created.ID.String()), "supply request created")
	return s.GetRequest(ctx, created.ID)
}

// GetRequest loads one supply request with its vendor and product.
func (s *service) GetRequest(ctx context.Context, requestID uuid.UUID) (*SupplyRequestDTO, error) {
	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supply request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading supply request")
	}
	return NewSupplyRequestDTO(request), nil
}

// ListRequests returns supply requests newest first.
func (s *service) ListRequests(ctx context.Context, filter ListFilter) ([]SupplyRequestDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid supply request status")
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing supply requests")
	}
	return NewSupplyRequestDTOs(rows), nil
}

// UpdateStatus advances the request through its lifecycle. Moving to received
// also books the quantity into stock, atomically with the status change.
func (s *service) UpdateStatus(ctx context.Context, requestID uuid.UUID, next enums.SupplyRequestStatus) (*SupplyRequestDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid supply request status")
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supply request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading supply request")
	}

	if !request.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
			WithDetails(map[string]any{
				"current":   request.Status.String(),
				"requested": next.String(),
			})
	}

	request.Status = next
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Update(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating supply request")
		}
		if next == enums.SupplyRequestStatusReceived {
			applied, err := s.catalogRepo.WithTx(tx).ApplyStockDelta(ctx, request.ProductID, request.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "booking received stock")
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"supply_request_id": requestID.String(),
		"status":            next.String(),
	})
	s.logg.Info(ctx, "supply request status updated")
	return s.GetRequest(ctx, requestID)
}
