package config

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/JaimeStill/palmwatch/pkg/middleware"
	"github.com/JaimeStill/palmwatch/pkg/openapi"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

const defaultMaxBodySize = 32 * 1024 * 1024

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PALMWATCH_CORS_ENABLED",
	Origins:          "PALMWATCH_CORS_ORIGINS",
	AllowedMethods:   "PALMWATCH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PALMWATCH_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PALMWATCH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PALMWATCH_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PALMWATCH_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PALMWATCH_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "PALMWATCH_OPENAPI_TITLE",
	Description: "PALMWATCH_OPENAPI_DESCRIPTION",
	Servers:     "PALMWATCH_OPENAPI_SERVERS",
}

// APIConfig holds API routing, request limits, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes, falling back to 32 MiB
// when unparseable. SI suffixes (MB) are base 1000 and IEC suffixes (MiB)
// are base 1024.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := humanize.ParseBytes(c.MaxBodySize)
	if err != nil || size == 0 || size > math.MaxInt64 {
		return defaultMaxBodySize
	}
	return int64(size)
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "32MiB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PALMWATCH_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PALMWATCH_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
