package http

import (
	"net/http"
	"strconv"

	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

// searchContacts serves GET /api/contacts/search?query=...&page=...&limit=...
// through the shared search cache, with q accepted as an alias. An empty
// query yields an empty page.
func (h *Handler) searchContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		query = r.URL.Query().Get("q")
	}
	page := intQueryParam(r, "page", 1)
	limit := intQueryParam(r, "limit", 0)

	result, err := h.services.ContactsService.SearchPaginated(r.Context(), user, query, page, limit)
	if err != nil {
		h.respondServiceError(w, r, err, "contact search failed")
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	tier := models.Tier(r.URL.Query().Get("tier"))
	location := r.URL.Query().Get("location")

	analytics, err := h.services.ContactsService.Analytics(r.Context(), user, tier, location)
	if err != nil {
		h.respondServiceError(w, r, err, "analytics query failed")
		return
	}

	utils.WriteJSON(w, analytics, http.StatusOK)
}

func (h *Handler) networkStats(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.services.ContactsService.NetworkStats(r.Context(), user)
	if err != nil {
		h.respondServiceError(w, r, err, "network stats query failed")
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// intQueryParam parses an integer query parameter, falling back to def
// when the parameter is absent or not a number.
func intQueryParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return value
}
