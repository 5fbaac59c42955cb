package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/JaimeStill/dataset-lab/pkg/imaging"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"IMAGE/JPEG", true},
		{"image/webp", true},
		{"image/png; charset=binary", true},
		{"image/svg+xml", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := imaging.IsSupported(tt.contentType); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
		wantW, wantH  int
	}{
		{"landscape", 200, 100, 48, 48, 24},
		{"portrait", 100, 400, 48, 12, 48},
		{"square", 96, 96, 48, 48, 48},
		{"within bounds", 20, 10, 48, 20, 10},
		{"extreme ratio", 1000, 1, 48, 48, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := imaging.Fit(tt.width, tt.height, tt.size)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Fit(%d, %d, %d) = %d, %d, want %d, %d",
					tt.width, tt.height, tt.size, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestThumbnail_ScalesToBounds(t *testing.T) {
	out, err := imaging.Thumbnail(encodePNG(t, 120, 60), 48)
	if err != nil {
		t.Fatalf("Thumbnail() failed: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 24 {
		t.Errorf("bounds = %dx%d, want 48x24", b.Dx(), b.Dy())
	}
}

func TestThumbnail_ConvertsJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("jpeg.Encode() failed: %v", err)
	}

	out, err := imaging.Thumbnail(buf.Bytes(), 48)
	if err != nil {
		t.Fatalf("Thumbnail() failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("Thumbnail() output is not PNG")
	}
}

func TestThumbnail_Errors(t *testing.T) {
	if _, err := imaging.Thumbnail([]byte("not an image"), 48); !errors.Is(err, imaging.ErrUnsupportedImage) {
		t.Errorf("Thumbnail(garbage) error = %v, want ErrUnsupportedImage", err)
	}
	if _, err := imaging.Thumbnail(encodePNG(t, 4, 4), 0); err == nil {
		t.Error("Thumbnail(size 0) succeeded, want error")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := imaging.SupportedTypes()
	if len(types) != 6 {
		t.Fatalf("len(SupportedTypes()) = %d, want 6", len(types))
	}
	for _, ct := range types {
		if !imaging.IsSupported(ct) {
			t.Errorf("IsSupported(%q) = false for listed type", ct)
		}
	}
	if types[0] != "image/bmp" {
		t.Errorf("SupportedTypes()[0] = %q, want sorted order", types[0])
	}
}
