// Package auth verifies OpenID Connect bearer tokens on incoming requests.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/palmwatch/pkg/handlers"
	"github.com/JaimeStill/palmwatch/pkg/lifecycle"
)

var (
	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrNotReady indicates the identity provider has not been discovered yet.
	ErrNotReady = errors.New("identity provider not ready")
)

// Claims are the verified identity fields attached to a request context.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

type claimsKey struct{}

// FromContext returns the claims attached by the middleware, if any.
func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

// System discovers the identity provider and guards handlers with token verification.
type System interface {
	// Start registers a startup hook that performs OIDC discovery. When auth
	// is enabled, readiness is tracked until a verifier is available.
	Start(lc *lifecycle.Coordinator) error
	// Ready reports whether requests can be verified. It is always true
	// while auth is disabled.
	Ready() bool
	// Middleware rejects requests without a valid bearer token.
	// It passes every request through when auth is disabled.
	Middleware() func(http.Handler) http.Handler
}

type verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

type oidcAuth struct {
	cfg      *Config
	logger   *slog.Logger
	verifier atomic.Pointer[verifier]
}

// New creates an auth system. Discovery happens in Start.
func New(cfg *Config, logger *slog.Logger) System {
	return &oidcAuth{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
}

// NewWithVerifier creates an auth system around an existing token verifier,
// bypassing discovery. Useful with oidc.NewVerifier and a static key set.
func NewWithVerifier(cfg *Config, v *oidc.IDTokenVerifier, logger *slog.Logger) System {
	a := &oidcAuth{
		cfg:    cfg,
		logger: logger.With("system", "auth"),
	}
	var iv verifier = v
	a.verifier.Store(&iv)
	return a
}

func (a *oidcAuth) Ready() bool {
	return !a.cfg.Enabled || a.verifier.Load() != nil
}

func (a *oidcAuth) Start(lc *lifecycle.Coordinator) error {
	if !a.cfg.Enabled {
		a.logger.Info("auth disabled")
		return nil
	}
	lc.Track("auth", a)

	lc.OnStartup(func() {
		provider, err := oidc.NewProvider(lc.Context(), a.cfg.IssuerURL)
		if err != nil {
			a.logger.Error("oidc discovery failed", "issuer", a.cfg.IssuerURL, "error", err)
			return
		}

		var v verifier = provider.Verifier(&oidc.Config{
			ClientID:          a.cfg.ClientID,
			SkipClientIDCheck: a.cfg.SkipClientIDCheck,
		})
		a.verifier.Store(&v)

		a.logger.Info("oidc provider ready", "issuer", a.cfg.IssuerURL)
	})

	return nil
}

func (a *oidcAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.cfg.Enabled || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrMissingToken)
				return
			}

			v := a.verifier.Load()
			if v == nil {
				handlers.RespondError(w, a.logger, http.StatusServiceUnavailable, ErrNotReady)
				return
			}

			token, err := (*v).Verify(r.Context(), raw)
			if err != nil {
				a.logger.Warn("token verification failed", "error", err)
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			claims := Claims{Subject: token.Subject}
			if err := token.Claims(&claims); err != nil {
				handlers.RespondError(w, a.logger, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
