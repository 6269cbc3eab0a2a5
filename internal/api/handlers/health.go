package handlers

import (
	"context"
	"net/http"
	"time"
)

// A named dependency probe, e.g. a database or Redis ping.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports liveness plus the state of each configured dependency.
type HealthHandler struct {
	Checks map[string]HealthCheck
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	res := map[string]string{"status": "ok"}
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			res["status"] = "degraded"
			res[name] = err.Error()
			continue
		}
		res[name] = "ok"
	}

	writeJSON(w, r, status, res)
}
