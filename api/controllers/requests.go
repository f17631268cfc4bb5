package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/api/responses"
	"github.com/udyoglabs/dukaan-backend/api/validators"
	"github.com/udyoglabs/dukaan-backend/internal/requests"
	"github.com/udyoglabs/dukaan-backend/pkg/enums"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

type createSupplyRequestRequest struct {
	VendorID     uuid.UUID `json:"vendor_id" validate:"required"`
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required,min=1"`
	ExpectedDate *string   `json:"expected_date,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// CreateSupplyRequest raises a restock request against a vendor.
func CreateSupplyRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSupplyRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := requests.CreateRequestInput{
			VendorID:  payload.VendorID,
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
			Notes:     payload.Notes,
		}
		if payload.ExpectedDate != nil {
			parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*payload.ExpectedDate))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expected_date must be a date (YYYY-MM-DD)"))
				return
			}
			input.ExpectedDate = &parsed
		}

		request, err := svc.CreateRequest(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// GetSupplyRequest loads one supply request.
func GetSupplyRequest(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.GetRequest(r.Context(), requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// ListSupplyRequests returns supply requests, optionally filtered by vendor or
// status.
func ListSupplyRequests(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := validators.ParseQueryUUID(r, "vendor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := requests.ListFilter{VendorID: vendorID}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseSupplyRequestStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filter.Status = &status
		}

		rows, err := svc.ListRequests(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

type updateSupplyRequestStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateSupplyRequestStatus moves a supply request through its lifecycle.
func UpdateSupplyRequestStatus(svc requests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := validators.ParseUUIDParam(r, "requestId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateSupplyRequestStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseSupplyRequestStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		request, err := svc.UpdateStatus(r.Context(), requestID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}
