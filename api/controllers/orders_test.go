package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/udyoglabs/dukaan-backend/internal/invoice"
	"github.com/udyoglabs/dukaan-backend/internal/orders"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
)

type stubOrderService struct {
	order  *orders.OrderDTO
	list   []orders.OrderDTO
	err    error
	filter orders.ListFilter
}

func (s *stubOrderService) CommitOrder(ctx context.Context) (*orders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*orders.OrderDTO, error) {
	return s.order, s.err
}

func (s *stubOrderService) ListOrders(ctx context.Context, filter orders.ListFilter) ([]orders.OrderDTO, error) {
	s.filter = filter
	return s.list, s.err
}

type stubInvoiceService struct {
	doc *invoice.Document
	err error
}

func (s *stubInvoiceService) GetInvoice(ctx context.Context, orderID uuid.UUID) (*invoice.Document, error) {
	return s.doc, s.err
}

func orderRouter(svc orders.Service, invSvc invoice.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/orders", CommitOrder(svc, nil))
	r.Get("/orders", ListOrders(svc, nil))
	r.Get("/orders/{orderId}", GetOrder(svc, nil))
	r.Get("/orders/{orderId}/invoice", GetInvoice(invSvc, nil))
	return r
}

func TestCommitOrder(t *testing.T) {
	dto := &orders.OrderDTO{
		ID:            uuid.New(),
		InvoiceNumber: "INV-20260831-0001",
		Date:          time.Now(),
		CustomerName:  "Walk-in",
		GrandTotal:    decimal.RequireFromString("118.00"),
	}
	svc := &stubOrderService{order: dto}
	router := orderRouter(svc, &stubInvoiceService{})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)

	var envelope struct {
		Data orders.OrderDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "INV-20260831-0001", envelope.Data.InvoiceNumber)
}

func TestCommitOrderEmptyCart(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")}
	router := orderRouter(svc, &stubInvoiceService{})

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListOrdersDateFilter(t *testing.T) {
	svc := &stubOrderService{list: []orders.OrderDTO{}}
	router := orderRouter(svc, &stubInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/orders?from=2026-08-01&to=2026-08-31", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, svc.filter.From)
	require.NotNil(t, svc.filter.To)
	require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *svc.filter.From)
}

func TestListOrdersBadDate(t *testing.T) {
	router := orderRouter(&stubOrderService{}, &stubInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/orders?from=31-08-2026", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	router := orderRouter(svc, &stubInvoiceService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetInvoice(t *testing.T) {
	doc := &invoice.Document{
		InvoiceNumber: "INV-20260831-0001",
		GeneratedFor:  "Walk-in",
		Date:          time.Now(),
		PageWidth:     595,
		PageHeight:    842,
	}
	router := orderRouter(&stubOrderService{}, &stubInvoiceService{doc: doc})

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString()+"/invoice", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var envelope struct {
		Data invoice.Document `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, "INV-20260831-0001", envelope.Data.InvoiceNumber)
	require.Equal(t, 595.0, envelope.Data.PageWidth)
}
