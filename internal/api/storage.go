package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/JaimeStill/palmwatch/pkg/handlers"
	"github.com/JaimeStill/palmwatch/pkg/openapi"
	"github.com/JaimeStill/palmwatch/pkg/routes"
	"github.com/JaimeStill/palmwatch/pkg/storage"
)

type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(
	store storage.System,
	logger *slog.Logger,
	maxListSize int32,
) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		maxListSize: maxListSize,
	}
}

// routes exposes the archived analysis artifacts and top-view images.
func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix:  "/storage",
		Tags:    []string{"Storage"},
		Schemas: storageSchemas,
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list, OpenAPI: storageOps.list},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download, OpenAPI: storageOps.download},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find, OpenAPI: storageOps.find},
		},
	}
}

var keyParam = openapi.PathParam("key", "Blob key, e.g. analyses/{id}/dashboard.json")

var storageSchemas = map[string]*openapi.Schema{
	"BlobMeta": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"key":            {Type: "string"},
			"content_type":   {Type: "string"},
			"content_length": {Type: "integer"},
			"last_modified":  {Type: "string", Format: "date-time"},
			"etag":           {Type: "string"},
		},
	},
	"BlobList": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"blobs":       {Type: "array", Items: openapi.SchemaRef("BlobMeta")},
			"next_marker": {Type: "string"},
		},
	},
}

var storageOps = struct {
	list, find, download *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List stored blobs",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("prefix", "string", "Key prefix such as analyses/ or surveys/", false),
			openapi.QueryParam("marker", "string", "Continuation marker from a previous page", false),
			openapi.QueryParam("max_results", "integer", "Page size", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Blob page", "BlobList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	find: &openapi.Operation{
		Summary:    "Get blob properties",
		Parameters: []*openapi.Parameter{keyParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Blob properties", "BlobMeta"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	download: &openapi.Operation{
		Summary:    "Download a blob",
		Parameters: []*openapi.Parameter{keyParam},
		Responses: map[int]*openapi.Response{
			200: {Description: "Blob content"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	marker := r.URL.Query().Get("marker")

	maxResults, err := storage.ParseMaxResults(
		r.URL.Query().Get("max_results"),
		h.maxListSize,
	)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusBadRequest, err,
		)
		return
	}

	result, err := h.store.List(
		r.Context(),
		prefix,
		marker,
		maxResults,
	)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusInternalServerError, err,
		)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	meta, err := h.store.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	result, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			storage.MapHTTPStatus(err), err,
		)
		return
	}
	defer result.Body.Close()

	w.Header().Set("Content-Type", result.ContentType)

	if result.ContentLength > 0 {
		w.Header().Set(
			"Content-Length",
			strconv.FormatInt(result.ContentLength, 10),
		)
	}
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, result.Body)
}
