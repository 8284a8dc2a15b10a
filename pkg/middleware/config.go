package middleware

import (
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the cross-origin policy for the API module.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// CORSEnv names the environment variables overriding CORSConfig fields.
// List values are comma-separated.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// Finalize applies defaults, then environment overrides.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge applies overlay. Booleans always apply; lists apply when set and
// MaxAge when non-negative.
func (c *CORSConfig) Merge(overlay *CORSConfig) {
	c.Enabled = overlay.Enabled
	c.AllowCredentials = overlay.AllowCredentials

	if overlay.Origins != nil {
		c.Origins = overlay.Origins
	}
	if overlay.AllowedMethods != nil {
		c.AllowedMethods = overlay.AllowedMethods
	}
	if overlay.AllowedHeaders != nil {
		c.AllowedHeaders = overlay.AllowedHeaders
	}
	if overlay.MaxAge >= 0 {
		c.MaxAge = overlay.MaxAge
	}
}

func (c *CORSConfig) loadDefaults() {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) {
	if v, ok := lookupBool(env.Enabled); ok {
		c.Enabled = v
	}
	if v, ok := lookupList(env.Origins); ok {
		c.Origins = v
	}
	if v, ok := lookupList(env.AllowedMethods); ok {
		c.AllowedMethods = v
	}
	if v, ok := lookupList(env.AllowedHeaders); ok {
		c.AllowedHeaders = v
	}
	if v, ok := lookupBool(env.AllowCredentials); ok {
		c.AllowCredentials = v
	}
	if name := env.MaxAge; name != "" {
		if n, err := strconv.Atoi(os.Getenv(name)); err == nil {
			c.MaxAge = n
		}
	}
}

func lookupBool(name string) (bool, bool) {
	if name == "" {
		return false, false
	}
	v, err := strconv.ParseBool(os.Getenv(name))
	return v, err == nil
}

func lookupList(name string) ([]string, bool) {
	if name == "" {
		return nil, false
	}
	raw := os.Getenv(name)
	if raw == "" {
		return nil, false
	}

	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out, len(out) > 0
}
