package ratelimit

import (
	"net/http"
	"strings"
)

// unknownIdentity is used when no forwarding header identifies the caller.
const unknownIdentity = "unknown"

// ClientIdentity derives the caller identity used as the rate-limit key.
//
// Forwarded-IP headers are consulted in order of trust: X-Forwarded-For
// (first hop), then X-Real-IP, then the provider-specific CF-Connecting-IP.
// Requests with none of these are pooled under a single "unknown" identity.
func ClientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// The header may carry a comma-separated chain; the first entry is
		// the originating client.
		if first, _, found := strings.Cut(forwarded, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return strings.TrimSpace(cfIP)
	}

	return unknownIdentity
}
