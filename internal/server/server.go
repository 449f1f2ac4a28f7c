package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/handler"
	"github.com/specmock/specmock/internal/logger"
)

// server fans the lifecycle contract out to every configured transport.
type server struct {
	transports []Server

	logger *logger.Logger
}

// NewServer builds the set of transport servers the configuration asks for.
// At least one of HTTPAddress or GRPCAddress must be set.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	var transports []Server

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		transports = append(transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" {
		transports = append(transports, newGRPCServer(cfg, logger))
	}

	if len(transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return &server{transports: transports, logger: logger}, nil
}

// RunServer launches every transport and blocks until a stop signal
// (SIGTERM, SIGINT or SIGQUIT) arrives and shutdown completes.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	idleConnectionsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	for _, t := range s.transports {
		go t.RunServer()
	}
	s.logger.Info().Int("transports", len(s.transports)).Msg("server started")

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shut down gracefully")
}

func (s *server) Shutdown() {
	for _, t := range s.transports {
		t.Shutdown()
	}
}
