package auth

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds OpenID Connect bearer-token verification settings.
type Config struct {
	Enabled           bool   `toml:"enabled"`
	IssuerURL         string `toml:"issuer_url"`
	ClientID          string `toml:"client_id"`
	SkipClientIDCheck bool   `toml:"skip_client_id_check"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled           string
	IssuerURL         string
	ClientID          string
	SkipClientIDCheck string
}

// Finalize applies environment variable overrides and validation.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Boolean fields always apply.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled
	c.SkipClientIDCheck = overlay.SkipClientIDCheck

	if overlay.IssuerURL != "" {
		c.IssuerURL = overlay.IssuerURL
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enabled = b
			}
		}
	}
	if env.IssuerURL != "" {
		if v := os.Getenv(env.IssuerURL); v != "" {
			c.IssuerURL = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.SkipClientIDCheck != "" {
		if v := os.Getenv(env.SkipClientIDCheck); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.SkipClientIDCheck = b
			}
		}
	}
}

func (c *Config) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.IssuerURL == "" {
		return fmt.Errorf("issuer_url required when auth is enabled")
	}
	if c.ClientID == "" && !c.SkipClientIDCheck {
		return fmt.Errorf("client_id required unless skip_client_id_check is set")
	}
	return nil
}
