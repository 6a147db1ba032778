package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-api-gateway/internal/config"
)

// corsPolicy is the cross-origin policy with its lists pre-joined.
type corsPolicy struct {
	origins     map[string]struct{}
	anyOrigin   bool
	methods     string
	headers     string
	exposed     string
	credentials bool
	maxAge      string
}

func newCORSPolicy(cfg config.CORS) *corsPolicy {
	p := &corsPolicy{
		origins:     make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:     strings.Join(cfg.AllowedMethods, ", "),
		headers:     strings.Join(cfg.AllowedHeaders, ", "),
		exposed:     strings.Join(cfg.ExposedHeaders, ", "),
		credentials: cfg.AllowCredentials,
	}
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			p.anyOrigin = true
			continue
		}
		if origin != "" {
			p.origins[origin] = struct{}{}
		}
	}
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed. A wildcard policy never reflects the
// caller's origin.
func (p *corsPolicy) allowOrigin(origin string) string {
	if _, ok := p.origins[origin]; ok {
		return origin
	}
	if p.anyOrigin {
		return "*"
	}
	return ""
}

// cors applies the cross-origin policy.
//
// A preflight request (OPTIONS with Origin and Access-Control-Request-Method)
// is answered with 204 and never reaches later stages. An allow-listed
// origin receives the configured methods, headers and max age; any other
// origin receives none of them. Actual requests from an allow-listed origin
// get Allow-Origin and Expose-Headers and are forwarded.
func (h *Handler) cors(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return r, nil
	}

	header := w.Header()
	header.Add("Vary", "Origin")

	preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""
	allowed := h.corsPolicy.allowOrigin(origin)

	if preflight {
		header.Add("Vary", "Access-Control-Request-Method")
		header.Add("Vary", "Access-Control-Request-Headers")

		if allowed != "" {
			header.Set("Access-Control-Allow-Origin", allowed)
			header.Set("Access-Control-Allow-Methods", h.corsPolicy.methods)
			if h.corsPolicy.headers != "" {
				header.Set("Access-Control-Allow-Headers", h.corsPolicy.headers)
			} else if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				header.Set("Access-Control-Allow-Headers", requested)
			}
			if h.corsPolicy.maxAge != "" {
				header.Set("Access-Control-Max-Age", h.corsPolicy.maxAge)
			}
			if h.corsPolicy.credentials {
				header.Set("Access-Control-Allow-Credentials", "true")
			}
		}

		w.WriteHeader(http.StatusNoContent)
		return nil, nil
	}

	if allowed != "" {
		header.Set("Access-Control-Allow-Origin", allowed)
		if h.corsPolicy.exposed != "" {
			header.Set("Access-Control-Expose-Headers", h.corsPolicy.exposed)
		}
		if h.corsPolicy.credentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
	}

	return r, nil
}
