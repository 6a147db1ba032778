package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

// NewCache picks the cache implementation from the scheme of cfg.URL:
// http and https select the REST protocol, redis and rediss a native Redis
// connection.
func NewCache(cfg config.Cache, logger *logger.Logger) (Cache, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("invalid cache url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return NewRESTCache(cfg, logger)
	case "redis", "rediss":
		return NewRedisCache(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCacheURL, u.Scheme)
	}
}
