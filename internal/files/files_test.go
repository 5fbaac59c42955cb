package files_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/dataset-lab/internal/files"
	"github.com/JaimeStill/dataset-lab/pkg/storage"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", files.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", files.ErrNotFound), http.StatusNotFound},
		{"dataset not found", files.ErrDatasetNotFound, http.StatusNotFound},
		{"duplicate", files.ErrDuplicate, http.StatusConflict},
		{"too large", files.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid", files.ErrInvalidFile, http.StatusBadRequest},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := files.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStorageKey(t *testing.T) {
	ds := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		filename string
		want     string
	}{
		{"data.csv", "files/" + ds.String() + "/" + id.String() + "/data.csv"},
		{"my report.pdf", "files/" + ds.String() + "/" + id.String() + "/my_report.pdf"},
		{"../../etc/passwd", "files/" + ds.String() + "/" + id.String() + "/passwd"},
		{"C:\\Users\\x\\pic?.png", "files/" + ds.String() + "/" + id.String() + "/pic_.png"},
		{"", "files/" + ds.String() + "/" + id.String() + "/file"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := files.StorageKey(ds, id, tt.filename)
			if got != tt.want {
				t.Errorf("StorageKey() = %q, want %q", got, tt.want)
			}
			if _, err := storage.CleanKey(got); err != nil {
				t.Errorf("StorageKey() produced invalid storage key %q: %v", got, err)
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		declared string
		data     []byte
		want     string
	}{
		{"declared wins", "text/csv", []byte("a,b"), "text/csv"},
		{"declared params dropped", "image/png; charset=binary", png, "image/png"},
		{"octet stream sniffed", "application/octet-stream", png, "image/png"},
		{"empty sniffed", "", png, "image/png"},
		{"sniffed text params dropped", "", []byte("plain words"), "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := files.DetectContentType(tt.declared, tt.data); got != tt.want {
				t.Errorf("DetectContentType(%q) = %q, want %q", tt.declared, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	ds := uuid.New()
	values := url.Values{
		"dataset_id":   {ds.String()},
		"name":         {"survey"},
		"content_type": {"image"},
	}

	f := files.FiltersFromQuery(values)

	if f.DatasetID == nil || *f.DatasetID != ds {
		t.Errorf("DatasetID = %v, want %v", f.DatasetID, ds)
	}
	if f.Name == nil || *f.Name != "survey" {
		t.Errorf("Name = %v, want survey", f.Name)
	}
	if f.ContentType == nil || *f.ContentType != "image" {
		t.Errorf("ContentType = %v, want image", f.ContentType)
	}

	bad := files.FiltersFromQuery(url.Values{"dataset_id": {"not-a-uuid"}})
	if bad.DatasetID != nil {
		t.Errorf("DatasetID = %v, want nil for invalid id", bad.DatasetID)
	}
}

func TestPageCount_RejectsNonPDF(t *testing.T) {
	if _, err := files.PageCount([]byte("not a pdf")); err == nil {
		t.Error("PageCount() succeeded, want error")
	}
}
