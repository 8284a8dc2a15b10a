package openapi

import (
	"os"
	"strings"
)

// Config holds document metadata. Servers lists URLs advertised in
// addition to the API base path, such as a public gateway address.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// ConfigEnv names the environment variables that override Config fields.
// Servers is read as a comma-separated list.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "PalmWatch API"
	}
	if c.Description == "" {
		c.Description = "Coconut palm health aggregation and field survey service."
	}
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if len(overlay.Servers) > 0 {
		c.Servers = overlay.Servers
	}
}

// Apply writes the metadata into spec after basePath.
func (c *Config) Apply(spec *Spec, basePath string) {
	spec.Info.Title = c.Title
	spec.SetDescription(c.Description)
	spec.AddServer(basePath)
	for _, url := range c.Servers {
		if url != basePath {
			spec.AddServer(url)
		}
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if v := lookup(env.Title); v != "" {
		c.Title = v
	}
	if v := lookup(env.Description); v != "" {
		c.Description = v
	}
	if v := lookup(env.Servers); v != "" {
		c.Servers = c.Servers[:0]
		for url := range strings.SplitSeq(v, ",") {
			if url = strings.TrimSpace(url); url != "" {
				c.Servers = append(c.Servers, url)
			}
		}
	}
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
