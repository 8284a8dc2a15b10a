package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/palmwatch/internal/api"
	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/infrastructure"
	"github.com/JaimeStill/palmwatch/pkg/module"
)

// Modules holds the mounted application modules.
type Modules struct {
	API *module.Module
}

// NewModules builds the API module from the shared infrastructure.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount registers every module with the router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok", nil)
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		checks := infra.Lifecycle.Readiness()
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready", checks)
			return
		}
		writeStatus(w, http.StatusOK, "ready", checks)
	})

	return router
}

type statusBody struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(statusBody{Status: status, Checks: checks})
}
