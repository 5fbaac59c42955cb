package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/dataset-lab/internal/infrastructure"
	"github.com/JaimeStill/dataset-lab/pkg/lifecycle"
)

func TestBuildRouter(t *testing.T) {
	lc := lifecycle.New()
	infra := &infrastructure.Infrastructure{Lifecycle: lc}

	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router := buildRouter(infra, api, "/api")

	get := func(path string) int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	if code := get("/healthz"); code != http.StatusOK {
		t.Errorf("/healthz status = %d, want %d", code, http.StatusOK)
	}
	if code := get("/readyz"); code != http.StatusServiceUnavailable {
		t.Errorf("/readyz before startup status = %d, want %d", code, http.StatusServiceUnavailable)
	}

	lc.WaitForStartup()

	if code := get("/readyz"); code != http.StatusOK {
		t.Errorf("/readyz after startup status = %d, want %d", code, http.StatusOK)
	}
	if code := get("/metrics"); code != http.StatusOK {
		t.Errorf("/metrics status = %d, want %d", code, http.StatusOK)
	}
	if code := get("/api/datasets"); code != http.StatusTeapot {
		t.Errorf("/api/datasets status = %d, want %d", code, http.StatusTeapot)
	}
}
