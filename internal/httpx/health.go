package httpx

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(r, w, map[string]string{"status": "ok"}, nil)
}

// ReadyHandler reports 503 until every pinger answers within timeout.
func ReadyHandler(timeout time.Duration, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		for _, p := range pingers {
			if err := p.Ping(ctx); err != nil {
				JSONError(r, w, http.StatusServiceUnavailable, CodeNotReady, "Service not ready", nil)
				return
			}
		}
		JSONSuccess(r, w, map[string]string{"status": "ready"}, nil)
	}
}
