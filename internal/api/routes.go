package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
	"github.com/JaimeStill/palmwatch/pkg/openapi"
	"github.com/JaimeStill/palmwatch/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	maxBody := cfg.API.MaxBodySizeBytes()

	groups := []routes.Group{
		domain.Farmers.Handler().Routes(),
		domain.Surveys.Handler(maxBody).Routes(),
		domain.Trees.Handler().Routes(),
		domain.Analyses.Handler(maxBody).Routes(),
		recommendations.NewHandler(domain.Recommendations, runtime.Logger).Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, cfg.Storage.MaxListSize).routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

// buildSpec renders the OpenAPI document for the registered groups.
func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	cfg.API.OpenAPI.Apply(spec, cfg.API.BasePath)
	if cfg.Auth.Enabled {
		spec.RequireBearer("OIDC access token issued by " + cfg.Auth.IssuerURL)
	}

	routes.Document(spec, "", groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("render openapi spec: %w", err)
	}
	return data, nil
}
