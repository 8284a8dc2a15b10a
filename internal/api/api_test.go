package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/palmwatch/internal/api"
	"github.com/JaimeStill/palmwatch/internal/config"
	"github.com/JaimeStill/palmwatch/internal/infrastructure"
	"github.com/JaimeStill/palmwatch/pkg/database"
	"github.com/JaimeStill/palmwatch/pkg/middleware"
	"github.com/JaimeStill/palmwatch/pkg/openapi"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
	"github.com/JaimeStill/palmwatch/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func validConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "palmwatch",
			User:            "palmwatch",
			Password:        "palmwatch",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "palmwatch",
			ConnectionString: azuriteConnString,
			MaxListSize:      50,
		},
		Analysis: config.AnalysisConfig{
			MaxFrames:    500,
			BatchWorkers: 2,
			MaxBatchSize: 10,
		},
		API: config.APIConfig{
			BasePath:    "/api",
			MaxBodySize: "8MB",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
			OpenAPI: openapi.Config{
				Title:       "PalmWatch API",
				Description: "test",
			},
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}
	if runtime.Logger == nil {
		t.Error("runtime logger is nil")
	}
	if runtime.Database == nil {
		t.Error("runtime database is nil")
	}
	if runtime.Storage == nil {
		t.Error("runtime storage is nil")
	}
	if runtime.Auth == nil {
		t.Error("runtime auth is nil")
	}
	if runtime.Lifecycle == nil {
		t.Error("runtime lifecycle is nil")
	}
	if runtime.Aggregator == nil || runtime.Catalog == nil {
		t.Error("runtime aggregation components are nil")
	}
	if runtime.Limits.MaxFrames != 500 || runtime.Limits.BatchWorkers != 2 {
		t.Errorf("limits: got %+v", runtime.Limits)
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}
	if domain.Farmers == nil || domain.Surveys == nil || domain.Trees == nil || domain.Analyses == nil {
		t.Error("NewDomain() left a system nil")
	}
	if domain.Recommendations == nil {
		t.Error("NewDomain() recommendations catalog is nil")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	m, err := api.NewModule(validConfig(), setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("GET", "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var spec openapi.Spec
	if err := json.NewDecoder(rec.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}

	if spec.Info.Title != "PalmWatch API" || spec.Info.Version != "0.1.0" {
		t.Errorf("info = %+v", spec.Info)
	}

	paths := []string{
		"/farmers",
		"/surveys/{id}/report",
		"/trees/{id}/parts",
		"/analyses",
		"/analyses/{id}/recommendations",
		"/recommendations/dashboard",
		"/storage/download/{key}",
	}
	for _, p := range paths {
		if _, ok := spec.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}

	if _, ok := spec.Components.Responses["TooLarge"]; !ok {
		t.Error("missing TooLarge response component")
	}
	if _, ok := spec.Components.Schemas["Dashboard"]; !ok {
		t.Error("missing Dashboard schema")
	}
	if len(spec.Security) != 0 {
		t.Errorf("security = %v, want none while auth is disabled", spec.Security)
	}
	if parts := spec.Components.Schemas["Dashboard"].Properties["parts"]; parts.AdditionalProperties == nil {
		t.Error("dashboard parts should describe their values")
	}
}

func TestRecommendationsWithoutBackingServices(t *testing.T) {
	m, err := api.NewModule(validConfig(), setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	body := `{"label":"Whitefly","confidence":30}`
	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"severity":"mild"`) {
		t.Errorf("body = %s, want mild severity", rec.Body.String())
	}
}

func TestAnalysisPreviewWithoutBackingServices(t *testing.T) {
	m, err := api.NewModule(validConfig(), setupInfra(t))
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	body := `{"frames":[
		{"part":"stem","status":"stem bleeding","health":"unhealthy","reliability":95},
		{"part":"stem","status":"healthy","health":"healthy","reliability":90}
	]}`
	rec := httptest.NewRecorder()
	m.Serve(rec, httptest.NewRequest("POST", "/api/analyses/preview", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var got struct {
		Meta struct {
			ValidFrames int `json:"valid_frames"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Meta.ValidFrames != 2 {
		t.Errorf("valid_frames = %d, want 2", got.Meta.ValidFrames)
	}
}
