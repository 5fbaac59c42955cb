// Package imaging decodes raster images and renders square-bounded PNG thumbnails.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"slices"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage indicates the data is not a decodable raster image.
var ErrUnsupportedImage = errors.New("imaging: unsupported image")

var supportedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// SupportedTypes returns the decodable content types in sorted order.
func SupportedTypes() []string {
	types := make([]string, 0, len(supportedTypes))
	for t := range supportedTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// IsSupported reports whether contentType names a raster format this package can decode.
// Parameters such as "; charset" are ignored.
func IsSupported(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return supportedTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// Decode returns the image and its format name.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	return img, format, nil
}

// Thumbnail scales the image in data so that its longest side is at most size
// pixels, preserving aspect ratio, and encodes the result as PNG.
// Images already within bounds are re-encoded without scaling.
func Thumbnail(data []byte, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("thumbnail size must be positive, got %d", size)
	}

	src, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	w, h := Fit(src.Bounds().Dx(), src.Bounds().Dy(), size)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit returns the dimensions of a width x height box scaled to fit within size x size.
// Neither side is reduced below one pixel and images are never enlarged.
func Fit(width, height, size int) (int, int) {
	if width <= size && height <= size {
		return max(width, 1), max(height, 1)
	}

	if width >= height {
		return size, max(height*size/width, 1)
	}
	return max(width*size/height, 1), size
}
