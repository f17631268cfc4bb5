package vendors

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/pkg/db"
	"github.com/udyoglabs/dukaan-backend/pkg/db/models"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

// Service exposes vendor directory operations.
type Service interface {
	CreateVendor(ctx context.Context, input CreateVendorInput) (*VendorDTO, error)
	UpdateVendor(ctx context.Context, vendorID uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
	DeactivateVendor(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error)
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error)
	ListVendors(ctx context.Context, activeOnly bool) ([]VendorDTO, error)
}

// CreateVendorInput holds the validated payload to create a vendor.
type CreateVendorInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	GSTIN   *string
}

// UpdateVendorInput holds optional mutation values for a vendor.
type UpdateVendorInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	GSTIN   *string
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a vendor service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// CreateVendor registers a supplier in the directory.
func (s *service) CreateVendor(ctx context.Context, input CreateVendorInput) (*VendorDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	vendor := &models.Vendor{
		ID:       uuid.New(),
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		GSTIN:    input.GSTIN,
		IsActive: true,
	}

	created, err := s.repo.Create(ctx, vendor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating vendor")
	}

	s.logg.Info(s.logg.WithField(ctx, "vendor_id", created.ID.String()), "vendor created")
	return NewVendorDTO(created), nil
}

// UpdateVendor applies a partial mutation to the vendor.
func (s *service) UpdateVendor(ctx context.Context, vendorID uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = *input.Name
	}
	if input.Phone != nil {
		vendor.Phone = input.Phone
	}
	if input.Email != nil {
		vendor.Email = input.Email
	}
	if input.Address != nil {
		vendor.Address = input.Address
	}
	if input.GSTIN != nil {
		vendor.GSTIN = input.GSTIN
	}

	updated, err := s.repo.Update(ctx, vendor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating vendor")
	}
	return NewVendorDTO(updated), nil
}

// DeactivateVendor soft-disables the vendor so it no longer shows in the
// active directory. Vendors with open supply requests cannot be deactivated.
func (s *service) DeactivateVendor(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	open, err := s.repo.CountOpenSupplyRequests(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting open supply requests")
	}
	if open > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vendor has open supply requests").
			WithDetails(map[string]any{"open_requests": open})
	}

	vendor.IsActive = false
	updated, err := s.repo.Update(ctx, vendor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deactivating vendor")
	}

	s.logg.Info(s.logg.WithField(ctx, "vendor_id", vendorID.String()), "vendor deactivated")
	return NewVendorDTO(updated), nil
}

// GetVendor loads one vendor.
func (s *service) GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.loadVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return NewVendorDTO(vendor), nil
}

// ListVendors returns the directory.
func (s *service) ListVendors(ctx context.Context, activeOnly bool) ([]VendorDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing vendors")
	}
	return NewVendorDTOs(rows), nil
}

func (s *service) loadVendor(ctx context.Context, vendorID uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading vendor")
	}
	return vendor, nil
}
