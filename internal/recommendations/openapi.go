package recommendations

import "github.com/JaimeStill/palmwatch/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Treatment": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":  {Type: "string"},
			"dose":  {Type: "string"},
			"apply": {Type: "string"},
		},
	},
	"Recommendation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"disease":     {Type: "string"},
			"status":      {Type: "string", Enum: []any{"healthy", "illness"}},
			"part":        {Type: "string"},
			"severity":    {Type: "string", Enum: []any{"mild", "medium", "severe"}},
			"confidence":  {Type: "number"},
			"fertilizers": {Type: "array", Items: openapi.SchemaRef("Treatment")},
			"practices":   {Type: "array", Items: &openapi.Schema{Type: "string"}},
			"label":       {Type: "string", Description: "Dashboard label the advice was derived from"},
			"error":       {Type: "string"},
		},
	},
	"RecommendationRequest": {
		Type:     "object",
		Required: []string{"label", "confidence"},
		Properties: map[string]*openapi.Schema{
			"label":      {Type: "string", Example: "bud rot"},
			"confidence": {Type: "number", Description: "0 to 100"},
			"part":       {Type: "string", Description: "Used for healthy practices"},
		},
	},
	"DashboardAdvice": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"tree":  openapi.SchemaRef("Recommendation"),
			"parts": openapi.MapOf(openapi.SchemaRef("Recommendation"), "Part name to recommendation"),
		},
	},
	"DashboardMeta": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"total_frames":          {Type: "integer"},
			"valid_frames":          {Type: "integer"},
			"ood_frames":            {Type: "integer"},
			"low_confidence_frames": {Type: "integer"},
			"discarded_frames":      {Type: "integer"},
		},
	},
	"PrimaryIssue": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"disease":  {Type: "string"},
			"part":     {Type: "string"},
			"severity": {Type: "string", Enum: []any{"critical", "localized"}},
			"note":     {Type: "string"},
		},
	},
	"TreeAggregate": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"health":          {Type: "string", Enum: []any{"healthy", "unhealthy", "unknown"}},
			"score":           {Type: "number"},
			"weighted_score":  {Type: "number"},
			"primary_disease": {Type: "string"},
			"primary_issue":   openapi.SchemaRef("PrimaryIssue"),
		},
	},
	"PartAggregate": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"health":                {Type: "string", Enum: []any{"healthy", "unhealthy", "unknown"}},
			"score":                 {Type: "number"},
			"weighted_score":        {Type: "number"},
			"frames":                {Type: "integer"},
			"avg_part_confidence":   {Type: "number"},
			"avg_status_confidence": {Type: "number"},
			"diseases":              openapi.MapOf(&openapi.Schema{Type: "number"}, "Disease to share of unhealthy weight"),
		},
	},
	"Dashboard": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"meta":  openapi.SchemaRef("DashboardMeta"),
			"tree":  openapi.SchemaRef("TreeAggregate"),
			"parts": openapi.MapOf(openapi.SchemaRef("PartAggregate"), "Part name to aggregate"),
		},
	},
}

var ops = struct {
	catalog, recommend, dashboard *openapi.Operation
}{
	catalog: &openapi.Operation{
		Summary: "List the treatment catalog",
		Responses: map[int]*openapi.Response{
			200: {Description: "Known diseases"},
		},
	},
	recommend: &openapi.Operation{
		Summary:     "Recommend treatment for a label",
		RequestBody: openapi.RequestBodyJSON("RecommendationRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recommendation", "Recommendation"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	dashboard: &openapi.Operation{
		Summary:     "Recommend treatment for a dashboard",
		RequestBody: openapi.RequestBodyJSON("Dashboard", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Advice per part", "DashboardAdvice"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}
