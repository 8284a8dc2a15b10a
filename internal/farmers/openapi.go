package farmers

import "github.com/JaimeStill/palmwatch/pkg/openapi"

var schemas = map[string]*openapi.Schema{
	"Farmer": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":         {Type: "string", Format: "uuid"},
			"name":       {Type: "string"},
			"phone":      {Type: "string", Description: "Unique when present"},
			"created_at": {Type: "string", Format: "date-time"},
		},
	},
	"CreateFarmer": {
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]*openapi.Schema{
			"name":  {Type: "string"},
			"phone": {Type: "string"},
		},
	},
	"FarmerSearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":      {Type: "integer"},
			"page_size": {Type: "integer"},
			"search":    {Type: "string"},
			"sort":      {Type: "string"},
			"name":      {Type: "string"},
			"phone":     {Type: "string"},
		},
	},
}

var ops = struct {
	list, find, create, search, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List farmers",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Matches name or phone", false),
			openapi.QueryParam("name", "string", "Name contains", false),
			openapi.QueryParam("phone", "string", "Exact phone", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of farmers"},
		},
	},
	find: &openapi.Operation{
		Summary:    "Find a farmer",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Farmer ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Farmer", "Farmer"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Register a farmer",
		RequestBody: openapi.RequestBodyJSON("CreateFarmer", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created farmer", "Farmer"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	search: &openapi.Operation{
		Summary:     "Search farmers",
		RequestBody: openapi.RequestBodyJSON("FarmerSearch", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of farmers"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	delete: &openapi.Operation{
		Summary:    "Delete a farmer and their surveys",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Farmer ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
