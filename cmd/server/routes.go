package main

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/dataset-lab/internal/infrastructure"
	"github.com/JaimeStill/dataset-lab/pkg/lifecycle"
)

// buildRouter mounts the API under basePath next to the operational endpoints.
func buildRouter(infra *infrastructure.Infrastructure, apiHandler http.Handler, basePath string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealthCheck)
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, infra.Lifecycle)
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	prefix := strings.TrimRight(basePath, "/")
	mux.Handle(prefix+"/", apiHandler)

	return mux
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
