package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/nutriflow/internal/telemetry/metrics"
	"github.com/2beens/nutriflow/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a JSON 500 and counts it. http.ErrAbortHandler
// is re-raised so the server aborts the response as it normally would.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.WithFields(log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}).Errorf("panic serving request: %v\n%s", rec, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteError(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
