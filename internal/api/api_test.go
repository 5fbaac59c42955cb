package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/dataset-lab/internal/api"
	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/infrastructure"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Name = "datasets"
	cfg.Database.User = "lab"
	cfg.Storage.BasePath = t.TempDir()
	cfg.API.CORS.Enabled = true
	cfg.API.CORS.Origins = []string{"http://localhost:3000"}

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() failed: %v", err)
	}
	h, err := api.NewHandler(cfg, infra)
	if err != nil {
		t.Fatalf("NewHandler() failed: %v", err)
	}
	return h
}

func TestNewHandler_Routes(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"dataset bad id", http.MethodGet, "/api/datasets/nope", http.StatusBadRequest},
		{"file bad id", http.MethodGet, "/api/files/nope", http.StatusBadRequest},
		{"thumbnail bad id", http.MethodGet, "/api/datasets/nope/thumbnail", http.StatusBadRequest},
		{"thumbnail data bad id", http.MethodGet, "/api/datasets/nope/thumbnail/data", http.StatusBadRequest},
		{"trailing slash", http.MethodGet, "/api/datasets/", http.StatusMovedPermanently},
		{"outside base path", http.MethodGet, "/datasets", http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/api/datasets/nope/thumbnail", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.want {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestNewHandler_CORS(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/datasets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
	}
}

func TestNewHandler_OpenAPI(t *testing.T) {
	h := newHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var doc struct {
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}

	thumb, ok := doc.Paths["/api/datasets/{id}/thumbnail"]
	if !ok {
		t.Fatal("thumbnail path not documented")
	}
	for _, method := range []string{"get", "put", "delete"} {
		if _, ok := thumb[method]; !ok {
			t.Errorf("thumbnail %s not documented", method)
		}
	}

	for _, name := range []string{"Dataset", "DataFile", "Thumbnail", "ThumbnailUpdate", "PageRequest"} {
		if _, ok := doc.Components.Schemas[name]; !ok {
			t.Errorf("schema %s missing", name)
		}
	}
}
