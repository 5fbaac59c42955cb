package thumbnails

import "github.com/JaimeStill/dataset-lab/pkg/openapi"

type spec struct {
	Find   *openapi.Operation
	Data   *openapi.Operation
	Update *openapi.Operation
	Upload *openapi.Operation
	Stage  *openapi.Operation
	Remove *openapi.Operation
}

var datasetParam = []*openapi.Parameter{openapi.PathParam("id", "Dataset ID")}

var Spec = spec{
	Find: &openapi.Operation{
		Summary:     "Find thumbnail",
		Description: "Resolve the dataset's current thumbnail: logo, selected file, or first image file",
		Parameters:  datasetParam,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Current thumbnail", "Thumbnail"),
			204: {Description: "Dataset has no thumbnail"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Data: &openapi.Operation{
		Summary:    "Thumbnail image",
		Parameters: datasetParam,
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Rendered PNG thumbnail", "image/png"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update thumbnail",
		Description: "Select a data file, promote a staged logo, or remove the thumbnail",
		Parameters:  datasetParam,
		RequestBody: openapi.RequestBodyJSON("ThumbnailUpdate", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Resulting thumbnail", "Thumbnail"),
			204: {Description: "Dataset has no thumbnail"},
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			422: openapi.ResponseRef("Unprocessable"),
			500: openapi.ResponseRef("ServerError"),
		},
	},
	Upload: &openapi.Operation{
		Summary:     "Upload logo",
		Description: "Stage and promote a standalone image as the dataset logo",
		Parameters:  datasetParam,
		RequestBody: openapi.RequestBodyMultipart("Logo image", nil),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Logo thumbnail", "Thumbnail"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	Stage: &openapi.Operation{
		Summary:     "Stage logo",
		Description: "Write a logo to the staging area without applying it",
		Parameters:  datasetParam,
		RequestBody: openapi.RequestBodyMultipart("Logo image", nil),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Staged logo", "StageResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	Remove: &openapi.Operation{
		Summary:    "Remove thumbnail",
		Parameters: datasetParam,
		Responses: map[int]*openapi.Response{
			204: {Description: "Thumbnail removed"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ThumbnailUpdate": {
			Type:     "object",
			Required: []string{"intent"},
			Properties: map[string]*openapi.Schema{
				"intent": {
					Type: "string",
					Enum: []string{string(IntentSelectFile), string(IntentUseUploadedImage), string(IntentRemove)},
				},
				"file_id":     {Type: "string", Format: "uuid", Description: "Required for select_file"},
				"staging_key": {Type: "string", Description: "Staged logo to promote for use_uploaded_image"},
			},
		},
		"StageResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"staging_key": {Type: "string"},
			},
		},
	}
}
