package main

import (
	"time"

	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/infrastructure"
)

// Server wires infrastructure, the mounted modules and the HTTP listener.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

// NewServer builds every system without contacting external services.
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
		"modules", router.Prefixes(),
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start registers infrastructure hooks, binds the listener and logs once
// startup hooks finish. Readiness is reported through /readyz.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("startup complete", "readiness", s.infra.Lifecycle.Readiness())
	}()

	return nil
}

// Shutdown cancels the lifecycle context and waits for hooks to drain.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
