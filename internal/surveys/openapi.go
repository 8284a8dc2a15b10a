package surveys

import "github.com/JaimeStill/palmwatch/pkg/openapi"

var idParam = openapi.PathParam("id", "Survey ID")

var schemas = map[string]*openapi.Schema{
	"Survey": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string", Format: "uuid"},
			"farmer_id":     {Type: "string", Format: "uuid"},
			"land_location": {Type: "string"},
			"total_trees":   {Type: "integer"},
			"topview_key":   {Type: "string", Description: "Blob key of the top-view image"},
			"extra_data":    {Type: "object"},
			"created_at":    {Type: "string", Format: "date-time"},
			"updated_at":    {Type: "string", Format: "date-time"},
		},
	},
	"CreateSurvey": {
		Type:     "object",
		Required: []string{"farmer_id"},
		Properties: map[string]*openapi.Schema{
			"farmer_id":     {Type: "string", Format: "uuid"},
			"land_location": {Type: "string"},
			"total_trees":   {Type: "integer"},
			"extra_data":    {Type: "object"},
		},
	},
	"UpdateSurvey": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"land_location": {Type: "string"},
			"total_trees":   {Type: "integer"},
			"extra_data":    {Type: "object"},
		},
	},
	"SurveySearch": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"page":          {Type: "integer"},
			"page_size":     {Type: "integer"},
			"search":        {Type: "string"},
			"sort":          {Type: "string"},
			"farmer_id":     {Type: "string", Format: "uuid"},
			"land_location": {Type: "string"},
		},
	},
	"SurveyReport": {
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"survey_id":                 {Type: "string", Format: "uuid"},
			"farmer_id":                 {Type: "string", Format: "uuid"},
			"land_location":             {Type: "string"},
			"total_trees":               {Type: "integer"},
			"trees_analyzed":            {Type: "integer"},
			"healthy_count":             {Type: "integer"},
			"unhealthy_count":           {Type: "integer"},
			"critical_count":            {Type: "integer"},
			"average_health_percentage": {Type: "number"},
			"overall_status":            {Type: "string", Enum: []any{"healthy", "unhealthy", "critical"}},
			"topview_key":               {Type: "string"},
			"message":                   {Type: "string"},
			"created_at":                {Type: "string", Format: "date-time"},
		},
	},
}

var ops = struct {
	list, find, report, topView, create, search, uploadTopView, update, delete *openapi.Operation
}{
	list: &openapi.Operation{
		Summary: "List surveys",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("farmer_id", "string", "Owning farmer", false),
			openapi.QueryParam("land_location", "string", "Location contains", false),
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of surveys"},
		},
	},
	find: &openapi.Operation{
		Summary:    "Find a survey",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Survey", "Survey"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	report: &openapi.Operation{
		Summary:     "Survey health report",
		Description: "Counts healthy, unhealthy, and critical trees and averages their health percentages.",
		Parameters:  []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Report", "SurveyReport"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	topView: &openapi.Operation{
		Summary:    "Download the top-view image",
		Parameters: []*openapi.Parameter{idParam},
		Responses: map[int]*openapi.Response{
			200: {Description: "Image bytes"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	create: &openapi.Operation{
		Summary:     "Start a survey",
		RequestBody: openapi.RequestBodyJSON("CreateSurvey", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created survey", "Survey"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	search: &openapi.Operation{
		Summary:     "Search surveys",
		RequestBody: openapi.RequestBodyJSON("SurveySearch", true),
		Responses: map[int]*openapi.Response{
			200: {Description: "Page of surveys"},
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	uploadTopView: &openapi.Operation{
		Summary:    "Upload the top-view image",
		Parameters: []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyMultipart("file", "Top-view image of the plot"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated survey", "Survey"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	update: &openapi.Operation{
		Summary:     "Update survey details",
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("UpdateSurvey", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated survey", "Survey"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	delete: &openapi.Operation{
		Summary: "Delete a survey and its trees",
		Parameters: []*openapi.Parameter{
			idParam,
			openapi.QueryParam("farmer_id", "string", "Require ownership by this farmer", false),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}
