package farmers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/palmwatch/internal/farmers"
	"github.com/JaimeStill/palmwatch/pkg/pagination"
)

type mockSystem struct {
	listFn   func(ctx context.Context, page pagination.PageRequest, filters farmers.Filters) (*pagination.PageResult[farmers.Farmer], error)
	findFn   func(ctx context.Context, id uuid.UUID) (*farmers.Farmer, error)
	createFn func(ctx context.Context, cmd farmers.CreateCommand) (*farmers.Farmer, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSystem) Handler() *farmers.Handler {
	return newTestHandler(m)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters farmers.Filters) (*pagination.PageResult[farmers.Farmer], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*farmers.Farmer, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd farmers.CreateCommand) (*farmers.Farmer, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestHandler(sys farmers.System) *farmers.Handler {
	return farmers.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *farmers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func ptr[T any](v T) *T { return &v }

func sampleFarmer() farmers.Farmer {
	return farmers.Farmer{
		ID:    uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Name:  "Ravi",
		Phone: ptr("+94770000001"),
	}
}

func TestHandlerList(t *testing.T) {
	f := sampleFarmer()
	var captured farmers.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, _ pagination.PageRequest, filters farmers.Filters) (*pagination.PageResult[farmers.Farmer], error) {
			captured = filters
			result := pagination.NewPageResult([]farmers.Farmer{f}, 1, 1, 20)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/farmers?name=rav", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result pagination.PageResult[farmers.Farmer]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 1 || result.Data[0].ID != f.ID {
		t.Errorf("unexpected result: %+v", result)
	}
	if captured.Name == nil || *captured.Name != "rav" {
		t.Errorf("name filter = %v, want rav", captured.Name)
	}
}

func TestHandlerFind(t *testing.T) {
	f := sampleFarmer()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*farmers.Farmer, error) {
			if id == f.ID {
				return &f, nil
			}
			return nil, farmers.ErrNotFound
		},
	}

	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/farmers/" + f.ID.String(), http.StatusOK},
		{"not found", "/farmers/" + uuid.NewString(), http.StatusNotFound},
		{"invalid id", "/farmers/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHandlerCreate(t *testing.T) {
	sys := &mockSystem{
		createFn: func(_ context.Context, cmd farmers.CreateCommand) (*farmers.Farmer, error) {
			switch {
			case strings.TrimSpace(cmd.Name) == "":
				return nil, farmers.ErrInvalidFarmer
			case cmd.Phone != nil && *cmd.Phone == "+taken":
				return nil, farmers.ErrDuplicate
			}
			return &farmers.Farmer{ID: uuid.New(), Name: cmd.Name, Phone: cmd.Phone}, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"created", `{"name":"Ravi","phone":"+9477"}`, http.StatusCreated},
		{"missing name", `{"phone":"+9477"}`, http.StatusBadRequest},
		{"duplicate phone", `{"name":"Ravi","phone":"+taken"}`, http.StatusConflict},
		{"malformed body", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/farmers", strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandlerSearch(t *testing.T) {
	var captured pagination.PageRequest
	var filters farmers.Filters
	sys := &mockSystem{
		listFn: func(_ context.Context, page pagination.PageRequest, f farmers.Filters) (*pagination.PageResult[farmers.Farmer], error) {
			captured = page
			filters = f
			result := pagination.NewPageResult([]farmers.Farmer{}, 0, page.Page, page.PageSize)
			return &result, nil
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	body := `{"page":2,"page_size":500,"phone":"+9477"}`
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/farmers/search", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.Page != 2 {
		t.Errorf("page = %d, want 2", captured.Page)
	}
	if captured.PageSize != 100 {
		t.Errorf("page_size = %d, want clamped 100", captured.PageSize)
	}
	if filters.Phone == nil || *filters.Phone != "+9477" {
		t.Errorf("phone filter = %v, want +9477", filters.Phone)
	}
}

func TestHandlerDelete(t *testing.T) {
	f := sampleFarmer()
	sys := &mockSystem{
		deleteFn: func(_ context.Context, id uuid.UUID) error {
			if id == f.ID {
				return nil
			}
			return farmers.ErrNotFound
		},
	}

	mux := setupMux(newTestHandler(sys))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/farmers/"+f.ID.String(), nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/farmers/"+uuid.NewString(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandlerRoutes(t *testing.T) {
	group := newTestHandler(&mockSystem{}).Routes()

	if group.Prefix != "/farmers" {
		t.Errorf("prefix = %q, want /farmers", group.Prefix)
	}

	for _, r := range group.Routes {
		if r.OpenAPI == nil {
			t.Errorf("route %s %s has no OpenAPI operation", r.Method, r.Pattern)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{farmers.ErrNotFound, http.StatusNotFound},
		{farmers.ErrDuplicate, http.StatusConflict},
		{farmers.ErrInvalidFarmer, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := farmers.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
