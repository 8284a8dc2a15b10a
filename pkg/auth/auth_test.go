package auth_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/JaimeStill/palmwatch/pkg/auth"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware(t *testing.T) {
	enabled := &auth.Config{Enabled: true, IssuerURL: "https://issuer.example", SkipClientIDCheck: true}
	staticVerifier := oidc.NewVerifier(
		"https://issuer.example",
		&oidc.StaticKeySet{},
		&oidc.Config{SkipClientIDCheck: true},
	)

	tests := []struct {
		name   string
		sys    auth.System
		method string
		header string
		want   int
	}{
		{
			name:   "disabled passes through",
			sys:    auth.New(&auth.Config{}, discard()),
			method: http.MethodGet,
			want:   http.StatusOK,
		},
		{
			name:   "preflight passes through",
			sys:    auth.New(enabled, discard()),
			method: http.MethodOptions,
			want:   http.StatusOK,
		},
		{
			name:   "missing token",
			sys:    auth.NewWithVerifier(enabled, staticVerifier, discard()),
			method: http.MethodGet,
			want:   http.StatusUnauthorized,
		},
		{
			name:   "wrong scheme",
			sys:    auth.NewWithVerifier(enabled, staticVerifier, discard()),
			method: http.MethodGet,
			header: "Basic dXNlcjpwYXNz",
			want:   http.StatusUnauthorized,
		},
		{
			name:   "provider not discovered",
			sys:    auth.New(enabled, discard()),
			method: http.MethodGet,
			header: "Bearer abc.def.ghi",
			want:   http.StatusServiceUnavailable,
		},
		{
			name:   "malformed token",
			sys:    auth.NewWithVerifier(enabled, staticVerifier, discard()),
			method: http.MethodGet,
			header: "Bearer not-a-jwt",
			want:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/surveys", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.sys.Middleware()(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := auth.FromContext(req.Context()); ok {
		t.Error("expected no claims on a bare context")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr bool
	}{
		{"disabled needs nothing", auth.Config{}, false},
		{"enabled without issuer", auth.Config{Enabled: true, ClientID: "palmwatch"}, true},
		{"enabled without client id", auth.Config{Enabled: true, IssuerURL: "https://issuer"}, true},
		{"enabled skipping client id", auth.Config{Enabled: true, IssuerURL: "https://issuer", SkipClientIDCheck: true}, false},
		{"enabled complete", auth.Config{Enabled: true, IssuerURL: "https://issuer", ClientID: "palmwatch"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("TEST_AUTH_ENABLED", "true")
	t.Setenv("TEST_AUTH_ISSUER", "https://login.example/tenant/v2.0")
	t.Setenv("TEST_AUTH_CLIENT", "palmwatch-api")

	cfg := auth.Config{}
	err := cfg.Finalize(&auth.Env{
		Enabled:   "TEST_AUTH_ENABLED",
		IssuerURL: "TEST_AUTH_ISSUER",
		ClientID:  "TEST_AUTH_CLIENT",
	})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if !cfg.Enabled || cfg.IssuerURL != "https://login.example/tenant/v2.0" || cfg.ClientID != "palmwatch-api" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestReady(t *testing.T) {
	enabled := &auth.Config{Enabled: true, IssuerURL: "https://issuer.example", SkipClientIDCheck: true}
	staticVerifier := oidc.NewVerifier("https://issuer.example", &oidc.StaticKeySet{}, &oidc.Config{SkipClientIDCheck: true})

	tests := []struct {
		name string
		sys  auth.System
		want bool
	}{
		{"disabled", auth.New(&auth.Config{}, discard()), true},
		{"enabled before discovery", auth.New(enabled, discard()), false},
		{"enabled with verifier", auth.NewWithVerifier(enabled, staticVerifier, discard()), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sys.Ready(); got != tt.want {
				t.Errorf("Ready() = %v, want %v", got, tt.want)
			}
		})
	}
}
