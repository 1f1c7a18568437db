package geoshops

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/clients/transport"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const collaborator = "shop finder"

// Client queries shops of the given types near a coordinate. Returned shops
// carry shop types in their Category field.
type Client interface {
	ShopsByCoord(ctx context.Context, at domain.Coordinates, shopTypes []string) ([]domain.Shop, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Breaker    breaker.Config
	HTTPClient *http.Client
	Observer   transport.CallObserver
}

type client struct {
	log *logger.Logger
	tc  *transport.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	tc, err := transport.New(log, transport.Config{
		Name:       "geoshops",
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Breaker:    cfg.Breaker,
		HTTPClient: cfg.HTTPClient,
		Observer:   cfg.Observer,
	})
	if err != nil {
		return nil, err
	}
	return &client{log: log.With("client", "GeoShopsClient"), tc: tc}, nil
}

func (c *client) ShopsByCoord(ctx context.Context, at domain.Coordinates, shopTypes []string) ([]domain.Shop, error) {
	if shopTypes == nil {
		shopTypes = []string{}
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	out, err := transport.DoJSON[[]domain.Shop](c.tc, ctx, "shops_by_coord", http.MethodPost, "/shopsByCoord", q, shopTypes)
	if err != nil {
		return nil, apierr.Unavailable(collaborator, err)
	}
	return out, nil
}
