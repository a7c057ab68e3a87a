package main

import (
	"fmt"
	"time"

	"github.com/callil/tax-ui/internal/config"
	"github.com/callil/tax-ui/internal/infrastructure"
)

// Server owns the process: shared infrastructure, the mounted API module,
// and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"classify_model", cfg.Inference.ClassifyModel,
		"extract_model", cfg.Inference.ExtractModel,
		"chunk_size", cfg.Classify.ChunkSize,
		"request_budget", cfg.RequestBudget(),
		"archive", infra.Storage != nil,
		"api_key", infra.Inference.HasKey(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start registers infrastructure hooks, binds the listener, and returns once
// both succeed; subsystem readiness is reported asynchronously.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("http start failed: %w", err)
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "checks", s.infra.Lifecycle.Status())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
