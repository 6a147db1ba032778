package server

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

type httpServer struct {
	server   *http.Server
	listener net.Listener
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	// net/http reports connection-level errors through a *log.Logger
	errorLog := logger.With().Str("component", "net/http").Logger()

	return &httpServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ErrorLog:          stdlog.New(errorLog, "", 0),
		},
	}
}

func (h *httpServer) listen() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", errListen, h.server.Addr, err)
	}
	h.listener = ln
	return nil
}

// port returns the bound TCP port, or 0 before listen.
func (h *httpServer) port() int {
	if h.listener == nil {
		return 0
	}
	if addr, ok := h.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

func (h *httpServer) serve() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %w", errServe, err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%w: %w", errShutdown, err)
	}
	return nil
}
