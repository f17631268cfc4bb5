package controllers

import (
	"net/http"

	"github.com/udyoglabs/dukaan-backend/api/responses"
	"github.com/udyoglabs/dukaan-backend/api/validators"
	"github.com/udyoglabs/dukaan-backend/internal/invoice"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
)

// GetInvoice returns the rendered invoice document for a committed order.
func GetInvoice(svc invoice.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.GetInvoice(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, doc)
	}
}
