package recommendations

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/palmwatch/internal/health"
	"github.com/JaimeStill/palmwatch/pkg/handlers"
	"github.com/JaimeStill/palmwatch/pkg/routes"
)

const maxBodySize = 4 << 20

// Request asks for advice on a single predicted label.
type Request struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Part       string  `json:"part,omitempty"`
}

// Handler provides HTTP endpoints over a treatment catalog.
type Handler struct {
	catalog *Catalog
	logger  *slog.Logger
}

// NewHandler creates a Handler for the given catalog.
func NewHandler(catalog *Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger.With("handler", "recommendations"),
	}
}

// Routes returns the route group definition for recommendation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:  "/recommendations",
		Tags:    []string{"Recommendations"},
		Schemas: schemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/catalog", Handler: h.Catalog, OpenAPI: ops.catalog},
			{Method: "POST", Pattern: "", Handler: h.Recommend, OpenAPI: ops.recommend},
			{Method: "POST", Pattern: "/dashboard", Handler: h.Dashboard, OpenAPI: ops.dashboard},
		},
	}
}

// Catalog lists the known diseases.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalog.Diseases())
}

// Recommend returns advice for one label and confidence.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[Request](r, maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rec, err := h.catalog.Recommend(req.Label, req.Confidence, req.Part)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Dashboard returns advice for every part of a posted dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := handlers.DecodeJSON[health.Dashboard](r, maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.catalog.FromDashboard(d))
}
