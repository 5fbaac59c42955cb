package datasets

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("dataset not found")
	ErrDuplicate         = errors.New("dataset already exists")
	ErrInvalidDataset    = errors.New("invalid dataset")
	ErrFileNotInDataset  = errors.New("file does not belong to dataset")
	ErrNotThumbnailable  = errors.New("file is not a supported image")
	ErrInvalidStagingKey = errors.New("invalid staging key")
	ErrStagingNotFound   = errors.New("staged logo not found")
	ErrInvalidImage      = errors.New("logo is not a valid image")
	ErrNoThumbnail       = errors.New("dataset has no thumbnail")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrStagingNotFound),
		errors.Is(err, ErrNoThumbnail):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDataset),
		errors.Is(err, ErrFileNotInDataset),
		errors.Is(err, ErrNotThumbnailable),
		errors.Is(err, ErrInvalidStagingKey),
		errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
