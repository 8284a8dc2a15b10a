// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/infrastructure"
	"github.com/JaimeStill/palmwatch/pkg/middleware"
	"github.com/JaimeStill/palmwatch/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Requests pass through CORS, then logging, then bearer-token auth.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(runtime.Auth.Middleware())

	return m, nil
}
