package datasets

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

const stagingRoot = "staging"

// StagingKey returns a fresh staging key for a dataset logo upload.
func StagingKey(datasetID uuid.UUID) string {
	return fmt.Sprintf("%s/%s/%s", stagingRoot, datasetID, uuid.New())
}

// ValidateStagingKey returns the cleaned key when it names a staged object
// directly under the dataset's staging directory.
func ValidateStagingKey(datasetID uuid.UUID, key string) (string, error) {
	cleaned, err := storage.CleanKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidStagingKey, key)
	}

	prefix := fmt.Sprintf("%s/%s/", stagingRoot, datasetID)
	rest, ok := strings.CutPrefix(cleaned, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidStagingKey, key)
	}

	return cleaned, nil
}

// NewLogoKey returns a fresh key for a promoted logo image. Each promotion gets
// its own directory so a failed update never touches the committed logo.
func NewLogoKey(datasetID uuid.UUID) string {
	return fmt.Sprintf("datasets/%s/logo/%s/original", datasetID, uuid.New())
}

// LogoThumbnailKey is where the rendered PNG thumbnail of the logo stored at
// logoKey is kept.
func LogoThumbnailKey(logoKey string) string {
	return path.Join(path.Dir(logoKey), "thumbnail.png")
}

// cacheKey names the rendered image for t. Both file and logo keys are
// immutable, so entries only need removal when their source goes away.
func cacheKey(t *Thumbnail) string {
	if t.Source == SourceFile && t.DataFile != nil {
		return fmt.Sprintf("thumbnail:%s:file:%s", t.DatasetID, t.DataFile.ID)
	}
	return logoCacheKey(t.DatasetID, t.StorageKey)
}

func logoCacheKey(datasetID uuid.UUID, thumbnailKey string) string {
	return fmt.Sprintf("thumbnail:%s:logo:%s", datasetID, path.Base(path.Dir(thumbnailKey)))
}
