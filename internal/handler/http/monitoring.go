package http

import (
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

// errorStats serves GET /api/monitoring/errors: aggregate counters plus
// the most recent entries (bounded by the "limit" query parameter,
// default 50).
func (h *Handler) errorStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userFromRequest(w, r); !ok {
		return
	}

	limit := intQueryParam(r, "limit", 50)

	utils.WriteJSON(w, map[string]any{
		"stats":   h.monitor.GetErrorStats(),
		"recent":  h.monitor.GetRecentErrors(limit),
		"healthy": h.monitor.IsHealthy(),
	}, http.StatusOK)
}

// clearErrors serves DELETE /api/monitoring/errors. Admin-only.
func (h *Handler) clearErrors(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	if !access.IsAdmin(user) {
		log.Error().Str("username", user.Username).Msg("error log clearing denied")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	h.monitor.Clear()
	log.Info().Str("username", user.Username).Msg("error log cleared")

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
