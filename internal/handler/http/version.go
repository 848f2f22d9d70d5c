package http

import (
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.buildInfo, http.StatusOK)
}

// health reports liveness plus the error monitor's verdict. A degraded
// verdict still answers 200 so that load balancers keep routing while
// operators investigate.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]any{
		"status":  "ok",
		"healthy": h.monitor.IsHealthy(),
	}, http.StatusOK)
}
