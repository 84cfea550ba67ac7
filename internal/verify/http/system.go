package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hireproof/internal/verify/metrics"
	"github.com/aussiebroadwan/hireproof/internal/verify/store"
	"github.com/aussiebroadwan/hireproof/pkg/httpx"
	"github.com/aussiebroadwan/hireproof/pkg/jwtx"
	"github.com/aussiebroadwan/hireproof/pkg/slogx"
	"github.com/aussiebroadwan/hireproof/pkg/verifysdk"
)

// Pinger is a dependency probed by /readyz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	verifysdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, verifysdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database, the signing keys and, when configured, the external MFA challenge store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	verifysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	verifysdk.HealthResponse	"one or more checks failed"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
	challenges Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := &verifysdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK
		degrade := func() {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			degrade()
		}
		if challenges != nil {
			checks.Challenges = "ok"
			if err := challenges.Ping(ctx); err != nil {
				checks.Challenges = "error: " + err.Error()
				degrade()
			}
		}

		if code != http.StatusOK {
			slogx.FromContext(ctx).Warn("not ready", "checks", checks)
		}
		httpx.WriteJSON(w, code, verifysdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// metricsMiddleware records one observation per request labelled by the
// matched route pattern. It must be the innermost global middleware so it
// sees the Pattern the mux sets on the request.
func metricsMiddleware(m *metrics.Metrics) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &slogx.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(route, rw.Status, time.Since(start))
		})
	}
}
