package http

import "net/http"

// withErrorMonitoring records every server-side failure in the error
// monitor, keyed by endpoint. Client errors (4xx) are not recorded here;
// the rate-limit middleware records its own warnings.
func (h *Handler) withErrorMonitoring(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lw, ok := w.(*responseWriter)
		if !ok {
			lw = &responseWriter{ResponseWriter: w}
		}

		next.ServeHTTP(lw, r)

		if lw.status >= http.StatusInternalServerError {
			h.monitor.LogError(http.StatusText(lw.status), r.URL.Path, map[string]any{
				"method": r.Method,
				"status": lw.status,
			})
		}
	})
}
