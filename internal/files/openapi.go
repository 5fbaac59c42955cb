package files

import "github.com/JaimeStill/dataset-lab/pkg/openapi"

type spec struct {
	List   *openapi.Operation
	Find   *openapi.Operation
	Data   *openapi.Operation
	Search *openapi.Operation
	Upload *openapi.Operation
	Delete *openapi.Operation
}

var filterParams = []*openapi.Parameter{
	openapi.QueryParam("dataset_id", "string", "Filter by dataset", false),
	openapi.QueryParam("name", "string", "Filter by name (contains)", false),
	openapi.QueryParam("content_type", "string", "Filter by content type (contains)", false),
}

var Spec = spec{
	List: &openapi.Operation{
		Summary: "List data files",
		Parameters: append([]*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Items per page", false),
			openapi.QueryParam("search", "string", "Search in name and filename", false),
		}, filterParams...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Data file page", "DataFilePageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Find data file",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Data file ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Data file", "DataFile"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Data: &openapi.Operation{
		Summary:    "Download data file",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Data file ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Stored file contents", "application/octet-stream"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search data files",
		Description: "Search data files with pagination in the request body",
		Parameters:  filterParams,
		RequestBody: openapi.RequestBodyJSON("PageRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Data file page", "DataFilePageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload data file",
		Description: "Store a file in a dataset. PDFs have their page count extracted.",
		RequestBody: openapi.RequestBodyMultipart("File contents", map[string]string{
			"dataset_id": "Owning dataset ID",
			"name":       "Optional display name (defaults to filename)",
		}),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Data file stored", "DataFile"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete data file",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Data file ID")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Data file deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DataFile": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"dataset_id":   {Type: "string", Format: "uuid"},
				"name":         {Type: "string", Description: "Display name"},
				"filename":     {Type: "string", Description: "Original filename"},
				"content_type": {Type: "string", Description: "MIME type"},
				"size_bytes":   {Type: "integer", Format: "int64"},
				"page_count":   {Type: "integer", Description: "Page count (PDFs only)"},
				"storage_key":  {Type: "string"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
		},
		"DataFilePageResult": openapi.PageResultSchema("DataFile"),
	}
}
