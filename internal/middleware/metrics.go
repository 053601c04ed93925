package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/stridehq/stride/internal/metrics"
)

// Metrics records a duration histogram per route pattern. The pattern, not
// the raw path, keeps the label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipLoggingPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(r.Method, path, strconv.Itoa(rw.statusCode), time.Since(start))
	})
}
