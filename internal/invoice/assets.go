package invoice

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/multierr"

	"github.com/udyoglabs/dukaan-backend/pkg/config"
	pkgerrors "github.com/udyoglabs/dukaan-backend/pkg/errors"
	"github.com/udyoglabs/dukaan-backend/pkg/logger"
	"github.com/udyoglabs/dukaan-backend/pkg/metrics"
)

const maxAssetBytes = 2 << 20

// Asset names used in metrics labels and missing-asset reporting.
const (
	AssetLogo      = "logo"
	AssetWatermark = "watermark"
	AssetPaymentQR = "payment_qr"
)

// Asset is a fetched and decoded document image.
type Asset struct {
	Name        string
	URL         string
	ContentType string
	PixelWidth  int
	PixelHeight int
}

// Assets carries the optional images for a render. A nil field means the
// asset is unconfigured or failed to load; Missing lists configured assets
// that failed.
type Assets struct {
	Logo      *Asset
	Watermark *Asset
	PaymentQR *Asset
	Missing   []string
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher loads invoice assets with a bounded best-effort attempt per asset.
type Fetcher struct {
	client  httpDoer
	cfg     config.InvoiceConfig
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewFetcher builds a fetcher honoring the configured asset timeout.
func NewFetcher(cfg config.InvoiceConfig, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: cfg.AssetTimeout},
		cfg:     cfg,
		metrics: orderMetrics,
		logg:    logg,
	}
}

// Fetch loads every configured asset. Failures never abort the render: the
// failed asset is reported in Assets.Missing and the aggregated error, and
// the caller degrades that section.
func (f *Fetcher) Fetch(ctx context.Context) (Assets, error) {
	assets := Assets{}
	var errs error

	for _, spec := range []struct {
		name string
		url  string
		dest **Asset
	}{
		{AssetLogo, f.cfg.LogoURL, &assets.Logo},
		{AssetWatermark, f.cfg.WatermarkURL, &assets.Watermark},
		{AssetPaymentQR, f.cfg.PaymentQRURL, &assets.PaymentQR},
	} {
		if spec.url == "" {
			continue
		}
		asset, err := f.fetchOne(ctx, spec.name, spec.url)
		if err != nil {
			assets.Missing = append(assets.Missing, spec.name)
			errs = multierr.Append(errs, err)
			f.metrics.IncAssetFailure(spec.name)
			if f.logg != nil {
				f.logg.Warn(f.logg.WithField(ctx, "asset", spec.name), "invoice asset unavailable")
			}
			continue
		}
		*spec.dest = asset
	}

	return assets, errs
}

func (f *Fetcher) fetchOne(ctx context.Context, name, url string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAssetUnavailable, err, "building asset request").
			WithDetails(map[string]any{"asset": name})
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAssetUnavailable, err, "fetching asset").
			WithDetails(map[string]any{"asset": name})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeAssetUnavailable, fmt.Sprintf("asset fetch returned %d", resp.StatusCode)).
			WithDetails(map[string]any{"asset": name})
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeAssetUnavailable, err, "decoding asset").
			WithDetails(map[string]any{"asset": name})
	}

	return &Asset{
		Name:        name,
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		PixelWidth:  cfg.Width,
		PixelHeight: cfg.Height,
	}, nil
}
