package trees

import "github.com/JaimeStill/palmwatch/pkg/openapi"

var idParam = openapi.PathParam("id", "Tree ID")

var schemas = map[string]*openapi.Schema{
	"Tree": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":                      {Type: "string", Format: "uuid"},
			"survey_id":               {Type: "string", Format: "uuid"},
			"tree_number":             {Type: "integer"},
			"cx":                      {Type: "number", Description: "Centroid x from top-view detection"},
			"cy":                      {Type: "number", Description: "Centroid y from top-view detection"},
			"final_status":            {Type: "string"},
			"final_health_percentage": {Type: "number"},
			"critical_alert":          {Type: "boolean"},
			"created_at":              {Type: "string", Format: "date-time"},
			"updated_at":              {Type: "string", Format: "date-time"},
		},
	},
	"TreePart": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":          {Type: "string", Format: "uuid"},
			"tree_id":     {Type: "string", Format: "uuid"},
			"part_name":   {Type: "string", Enum: []any{"stem", "leaves", "bud"}},
			"status":      {Type: "string"},
			"confidence":  {Type: "number"},
			"extra":       {Type: "object"},
			"recorded_at": {Type: "string", Format: "date-time"},
		},
	},
	"CreateTree": {
		Type:     "object",
		Required: []string{"survey_id", "tree_number"},
		Properties: map[string]*openapi.Schema{
			"survey_id":   {Type: "string", Format: "uuid"},
			"tree_number": {Type: "integer", Description: "Positive and unique within the survey"},
			"cx":          {Type: "number"},
			"cy":          {Type: "number"},
		},
	},
	"RecordPart": {
		Type:     "object",
		Required: []string{"part", "status", "confidence"},
		Properties: map[string]*openapi.Schema{
			"part": {Type: "string", Enum: []any{"stem", "leaves", "leaf", "bud"}},
			"status": {Type: "string", Enum: []any{
				"healthy", "unhealthy", "critical", "bud_rot", "bud_root_dropping", "stem_bleeding",
			}},
			"confidence": {Type: "number", Description: "0 to 1"},
			"farmer_id":  {Type: "string", Format: "uuid", Description: "Require ownership by this farmer"},
			"extra":      {Type: "object"},
		},
	},
	"PartUpdate": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"tree":       openapi.SchemaRef("Tree"),
			"part":       openapi.SchemaRef("TreePart"),
			"assessment": openapi.SchemaRef("Assessment"),
		},
	},
	"Assessment": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"overall_status":       {Type: "string", Enum: []any{"healthy", "unhealthy", "critical", "needs_inspection", "unknown"}},
			"overall_confidence":   {Type: "number"},
			"health_percentage":    {Type: "number"},
			"critical_alert":       {Type: "boolean"},
			"total_parts_assessed": {Type: "integer"},
			"parts":                openapi.MapOf(openapi.SchemaRef("PartAssessment"), "Part name to voted status"),
		},
	},
	"PartAssessment": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"status":              {Type: "string"},
			"confidence":          {Type: "number"},
			"total_observations":  {Type: "integer"},
			"consensus":           {Type: "number"},
			"status_distribution": openapi.MapOf(&openapi.Schema{Type: "integer"}, "Status to observation count"),
			"part":                {Type: "string"},
			"observations":        {Type: "integer"},
		},
	},
	"Observation": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"status":     {Type: "string"},
			"confidence": {Type: "number", Description: "0 to 1, defaults to 0.5"},
		},
	},
	"PartObservations": openapi.MapOf(
		openapi.ArrayOf(openapi.SchemaRef("Observation")),
		"Map of part name to its observations",
	),
}

var ops = struct {
	list, find, parts, create, search, assess, recordPart, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List trees",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("survey_id", "string", "Owning survey", false),
			openapi.QueryParam("farmer_id", "string", "Trees in any of the farmer's surveys", false),
			openapi.QueryParam("final_status", "string", "Exact final status", false),
			openapi.QueryParam("critical_alert", "boolean", "Alerted trees only", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of trees"},
		},
	},
	find: &openapi.Operation{
		Summary:    "Find a tree",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Tree", "Tree"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	parts: &openapi.Operation{
		Summary:    "List recorded part observations",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: {Description: "Observations, oldest first"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Register a tree",
		RequestBody: openapi.RequestBodyJSON("CreateTree", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created tree", "Tree"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	search: &openapi.Operation{
		Summary: "Search trees",
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of trees"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	assess: &openapi.Operation{
		Summary:     "Assess observations without storing them",
		RequestBody: openapi.RequestBodyJSON("PartObservations", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Assessment", "Assessment"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	recordPart: &openapi.Operation{
		Summary:     "Record a part observation and re-assess the tree",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("RecordPart", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated tree", "PartUpdate"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete a tree",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
