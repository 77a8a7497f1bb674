package main

import (
	"context"
	"net/http"
	"time"

	"propertyguard/pkg/platform/httputil"
)

// healthCheck probes one backing dependency.
type healthCheck struct {
	name  string
	probe func(ctx context.Context) error
}

// healthHandler reports the state of every configured dependency. Optional
// dependencies that are not configured simply do not appear in the output;
// any failing check turns the overall status to degraded with a 503 so load
// balancers stop routing here.
func healthHandler(checks []healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		results := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.probe(ctx); err != nil {
				status = "degraded"
				results[check.name] = err.Error()
				continue
			}
			results[check.name] = "ok"
		}

		code := http.StatusOK
		if status != "ok" {
			code = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, map[string]any{
			"status": status,
			"checks": results,
		})
	}
}
