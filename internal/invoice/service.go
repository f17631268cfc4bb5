package invoice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/udyoglabs/dukaan-backend/internal/orders"
	"github.com/udyoglabs/dukaan-backend/pkg/config"
	"github.com/udyoglabs/dukaan-backend/pkg/db"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
	"github.com/udyoglabs/dukaan-backend/pkg/redis"
)

// Service renders invoice documents for committed orders.
type Service interface {
	GetInvoice(ctx context.Context, orderID uuid.UUID) (*Document, error)
}

type assetFetcher interface {
	Fetch(ctx context.Context) (Assets, error)
}

type service struct {
	ordersRepo *orders.Repository
	fetcher    assetFetcher
	cache      *redis.Client
	cfg        config.InvoiceConfig
	metrics    *metrics.OrderMetrics
	logg       *logger.Logger
}

// NewService constructs an invoice service. cache may be nil; rendering then
// happens on every request.
func NewService(
	ordersRepo *orders.Repository,
	fetcher assetFetcher,
	cache *redis.Client,
	cfg config.InvoiceConfig,
	orderMetrics *metrics.OrderMetrics,
	logg *logger.Logger,
) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("asset fetcher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		ordersRepo: ordersRepo,
		fetcher:    fetcher,
		cache:      cache,
		cfg:        cfg,
		metrics:    orderMetrics,
		logg:       logg,
	}, nil
}

// GetInvoice returns the rendered document for an order, serving from cache
// when a complete render is available there.
func (s *service) GetInvoice(ctx context.Context, orderID uuid.UUID) (*Document, error) {
	if doc := s.fromCache(ctx, orderID); doc != nil {
		return doc, nil
	}

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	assets, assetErr := s.fetcher.Fetch(ctx)
	if assetErr != nil {
		// degraded sections only; the render proceeds
		s.logg.Warn(s.logg.WithOrderID(ctx, orderID.String()), "rendering invoice with missing assets")
	}

	doc := Render(order, Issuer{
		Name:    s.cfg.IssuerName,
		Tagline: s.cfg.IssuerTagline,
		Contact: s.cfg.IssuerContact,
		GSTIN:   s.cfg.IssuerGSTIN,
	}, assets)
	s.metrics.IncRender()

	// only complete renders are cached, so a transient asset failure is not
	// pinned for the whole TTL
	if len(doc.MissingAssets) == 0 {
		s.toCache(ctx, orderID, doc)
	}

	return doc, nil
}

func (s *service) fromCache(ctx context.Context, orderID uuid.UUID) *Document {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.Get(ctx, s.cache.InvoiceKey(orderID.String()))
	if err != nil {
		if err != redis.Nil {
			s.logg.Warn(ctx, "invoice cache read failed")
		}
		return nil
	}

	var doc Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		s.logg.Warn(ctx, "invoice cache entry corrupt")
		return nil
	}
	return &doc
}

func (s *service) toCache(ctx context.Context, orderID uuid.UUID, doc *Document) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.InvoiceKey(orderID.String()), payload, s.cfg.CacheTTL); err != nil {
		s.logg.Warn(ctx, "invoice cache write failed")
	}
}
