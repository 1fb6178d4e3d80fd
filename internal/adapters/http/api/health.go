package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/crosstune/pkg/metrics"
)

// ReadinessProbe reports whether the catalog is loaded.
type ReadinessProbe func() bool

// HealthHandler serves metrics and readiness.
type HealthHandler struct {
	ready   ReadinessProbe
	metrics http.Handler
}

// NewHealthHandler creates a new health handler. A nil probe reports ready.
func NewHealthHandler(ready ReadinessProbe) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{
		ready:   ready,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz with Prometheus metrics from our
// custom registry.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

// HandleReady handles GET /readyz.
func (h *HealthHandler) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if !h.ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
