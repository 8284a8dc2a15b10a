package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/palmwatch/internal/infrastructure"
	"github.com/JaimeStill/palmwatch/pkg/lifecycle"
)

type probeBody struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

func probe(t *testing.T, router http.Handler, path string) (int, probeBody) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body probeBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return rec.Code, body
}

func TestHealthz(t *testing.T) {
	router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lifecycle.New()})

	code, body := probe(t, router, "/healthz")
	if code != http.StatusOK || body.Status != "ok" {
		t.Errorf("healthz = %d %q, want 200 ok", code, body.Status)
	}
}

func TestReadyz(t *testing.T) {
	lc := lifecycle.New()
	var storageReady atomic.Bool
	lc.Track("storage", lifecycle.ReadyFunc(storageReady.Load))
	router := buildRouter(&infrastructure.Infrastructure{Lifecycle: lc})

	code, body := probe(t, router, "/readyz")
	if code != http.StatusServiceUnavailable || body.Status != "not ready" {
		t.Errorf("before startup = %d %q, want 503 not ready", code, body.Status)
	}

	lc.WaitForStartup()

	code, body = probe(t, router, "/readyz")
	if code != http.StatusServiceUnavailable {
		t.Errorf("storage down = %d, want 503", code)
	}
	want := map[string]bool{lifecycle.StartupCheck: true, "storage": false}
	if diff := cmp.Diff(want, body.Checks); diff != "" {
		t.Errorf("checks mismatch (-want +got):\n%s", diff)
	}

	storageReady.Store(true)

	code, body = probe(t, router, "/readyz")
	if code != http.StatusOK || body.Status != "ready" {
		t.Errorf("after startup = %d %q, want 200 ready", code, body.Status)
	}
}
