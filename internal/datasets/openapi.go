package datasets

import "github.com/JaimeStill/dataset-lab/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Search *openapi.Operation
	Create *openapi.Operation
	Update *openapi.Operation
	Delete *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary: "List datasets",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in title and description", false),
			openapi.QueryParam("title", "string", "Filter by title (contains)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dataset page", "DatasetPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find dataset",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dataset", "Dataset"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search datasets",
		Parameters:  []*openapi.Parameter{openapi.QueryParam("title", "string", "Filter by title (contains)", false)},
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dataset page", "DatasetPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create dataset",
		RequestBody: openapi.RequestBodyJSON("DatasetCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Dataset created", "Dataset"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update dataset",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
		RequestBody: openapi.RequestBodyJSON("DatasetCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Dataset updated", "Dataset"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete dataset",
		Description: "Delete the dataset, its data files, and its logo",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Dataset deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Dataset": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                    {Type: "string", Format: "uuid"},
				"title":                 {Type: "string"},
				"description":           {Type: "string", Nullable: true},
				"thumbnail_file_id":     {Type: "string", Format: "uuid", Nullable: true, Description: "Data file selected as thumbnail"},
				"logo_key":              {Type: "string", Nullable: true, Description: "Storage key of the uploaded logo"},
				"use_generic_thumbnail": {Type: "boolean", Description: "Thumbnail was explicitly removed"},
				"created_at":            {Type: "string", Format: "date-time"},
				"updated_at":            {Type: "string", Format: "date-time"},
			},
		},
		"DatasetCommand": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":       {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"DatasetPageResult": openapi.PageResultSchema("Dataset"),
		"Thumbnail": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"dataset_id":   {Type: "string", Format: "uuid"},
				"source":       {Type: "string", Enum: []string{string(SourceLogo), string(SourceFile)}},
				"data_file":    openapi.SchemaRef("DataFile"),
				"storage_key":  {Type: "string"},
				"content_type": {Type: "string"},
			},
		},
	}
}
