package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration
	running         atomic.Bool

	// ready is closed once the listener is bound.
	ready chan struct{}

	logger *logger.Logger
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handler == nil {
		return nil, errNoHandler
	}

	logger.Info().Msg("creating new server...")
	return &server{
		httpServer:      newHTTPServer(handler, cfg, logger),
		shutdownTimeout: cfg.ShutdownTimeout,
		ready:           make(chan struct{}),
		logger:          logger,
	}, nil
}

func (s *server) RunServer() error {
	return s.Run(context.Background())
}

func (s *server) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errAlreadyRunning
	}

	if err := s.httpServer.listen(); err != nil {
		return err
	}
	s.logger.Info().Int("port", s.httpServer.port()).Msg("gateway is listening")
	close(s.ready)

	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	served := make(chan error, 1)
	go func() {
		served <- s.httpServer.serve()
	}()

	select {
	case err := <-served:
		// Serve returned without a stop being requested
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("stop requested, shutting down server")
	if err := s.Shutdown(); err != nil {
		return err
	}
	if err := <-served; err != nil {
		return err
	}

	s.logger.Info().Msg("server shut down gracefully")
	return nil
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.httpServer.shutdown(ctx)
}
