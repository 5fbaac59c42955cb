package thumbnails

import (
	"fmt"
	"strings"
)

// Intent is the change a caller wants to make to a dataset thumbnail.
type Intent string

const (
	IntentSelectFile       Intent = "select_file"
	IntentUseUploadedImage Intent = "use_uploaded_image"
	IntentRemove           Intent = "remove"
)

var intentAliases = map[string]Intent{
	"select_file":                        IntentSelectFile,
	"userhasselecteddatafileasthumbnail": IntentSelectFile,
	"use_uploaded_image":                 IntentUseUploadedImage,
	"userwantstousenondatasetfile":       IntentUseUploadedImage,
	"remove":                             IntentRemove,
	"userwantstoremovethumbnail":         IntentRemove,
}

// ParseIntent maps s to an Intent. Matching is case-insensitive and also
// accepts the long-form names used by older API clients.
func ParseIntent(s string) (Intent, error) {
	if i, ok := intentAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return i, nil
	}
	return "", fmt.Errorf("%w: intent %q", ErrUnsupported, s)
}

// Valid reports whether i is one of the known intents. Matching is exact.
func (i Intent) Valid() bool {
	switch i {
	case IntentSelectFile, IntentUseUploadedImage, IntentRemove:
		return true
	default:
		return false
	}
}

func (i Intent) String() string {
	return string(i)
}
