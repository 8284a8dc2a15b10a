package analyses

import "github.com/JaimeStill/palmwatch/pkg/openapi"

var idParam = openapi.PathParam("id", "Analysis ID")

var schemas = map[string]*openapi.Schema{
	"Analysis": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":               {Type: "string", Format: "uuid"},
			"tree_id":          {Type: "string", Format: "uuid"},
			"source":           {Type: "string"},
			"tree_health":      {Type: "string", Enum: []any{"healthy", "unhealthy", "unknown"}},
			"weighted_score":   {Type: "number"},
			"primary_disease":  {Type: "string"},
			"critical_alert":   {Type: "boolean"},
			"total_frames":     {Type: "integer"},
			"valid_frames":     {Type: "integer"},
			"discarded_frames": {Type: "integer"},
			"frames_key":       {Type: "string", Description: "Blob key of the archived raw batch"},
			"dashboard_key":    {Type: "string", Description: "Blob key of the archived dashboard"},
			"created_at":       {Type: "string", Format: "date-time"},
		},
	},
	"CreateAnalysis": {
		Type:     "object",
		Required: []string{"frames"},
		Properties: map[string]*openapi.Schema{
			"tree_id": {Type: "string", Format: "uuid", Description: "Tree whose outcome is updated"},
			"source":  {Type: "string", Example: "video"},
			"frames": {
				Type:        "array",
				Description: "Raw prediction records in nested or flat shape",
				Items:       &openapi.Schema{Type: "object"},
			},
		},
	},
	"AnalysisResult": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"analysis":  openapi.SchemaRef("Analysis"),
			"dashboard": openapi.SchemaRef("Dashboard"),
		},
	},
	"AnalysisBatch": {
		Type:     "object",
		Required: []string{"items"},
		Properties: map[string]*openapi.Schema{
			"items": {Type: "array", Items: openapi.SchemaRef("CreateAnalysis")},
		},
	},
	"AnalysisBatchItem": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"index":  {Type: "integer"},
			"result": openapi.SchemaRef("AnalysisResult"),
			"error":  {Type: "string"},
		},
	},
}

var ops = struct {
	list, find, dashboard, recommendations, create, batch, preview, search, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List analyses",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("tree_id", "string", "Analyzed tree", false),
			openapi.QueryParam("tree_health", "string", "Tree verdict", false),
			openapi.QueryParam("critical_alert", "boolean", "Critical findings only", false),
			openapi.QueryParam("source", "string", "Source contains", false),
			openapi.QueryParam("min_score", "number", "Minimum weighted score", false),
			openapi.QueryParam("max_score", "number", "Maximum weighted score", false),
			openapi.QueryParam("since", "string", "Created at or after (RFC 3339)", false),
			openapi.QueryParam("until", "string", "Created at or before (RFC 3339)", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of analyses"},
		},
	},
	find: &openapi.Operation{
		Summary:    "Find an analysis",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Analysis", "Analysis"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	dashboard: &openapi.Operation{
		Summary:    "Get the stored dashboard",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dashboard", "Dashboard"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	recommendations: &openapi.Operation{
		Summary:    "Recommend treatment for the stored dashboard",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Advice per part", "DashboardAdvice"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Aggregate and store a frame batch",
		RequestBody: openapi.RequestBodyJSON("CreateAnalysis", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored analysis", "AnalysisResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	batch: &openapi.Operation{
		Summary:     "Aggregate and store several frame batches",
		RequestBody: openapi.RequestBodyJSON("AnalysisBatch", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Per-item results"},
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	preview: &openapi.Operation{
		Summary:     "Aggregate a frame batch without storing it",
		RequestBody: openapi.RequestBodyJSON("CreateAnalysis", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dashboard", "Dashboard"),
			400: openapi.ResponseRef("BadRequest"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	search: &openapi.Operation{
		Summary: "Search analyses",
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of analyses"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete an analysis and its archived blobs",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
