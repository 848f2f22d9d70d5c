package http

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
)

// withRateLimit enforces the admission window of the given class for each
// caller identity. Rejected requests receive HTTP 429 with a Retry-After
// header and are recorded as warnings in the error monitor.
func (h *Handler) withRateLimit(class ratelimit.Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			identity := ratelimit.ClientIdentity(r)
			decision := h.limiter.Allow(class, identity)
			if !decision.Allowed {
				retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}

				log.Warn().
					Str("class", string(class)).
					Str("identity", identity).
					Int("retry_after", retryAfter).
					Msg("rate limit exceeded")
				h.monitor.LogWarning(decision.Reason, r.URL.Path, map[string]any{
					"class":    string(class),
					"identity": identity,
				})

				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				http.Error(w, decision.Reason, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
