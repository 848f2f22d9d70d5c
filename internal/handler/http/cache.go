package http

import (
	"encoding/json"
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

// cacheStats serves GET /api/cache: the current search-cache counters.
func (h *Handler) cacheStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.userFromRequest(w, r); !ok {
		return
	}

	utils.WriteJSON(w, h.searchCache.Stats(), http.StatusOK)
}

// cacheAction serves POST /api/cache. Supported actions: "clear", "warm",
// "stats". Clearing and warming change shared state and are admin-only.
func (h *Handler) cacheAction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var request models.CacheActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	switch request.Action {
	case models.CacheActionStats:
		utils.WriteJSON(w, h.searchCache.Stats(), http.StatusOK)

	case models.CacheActionClear:
		if !access.IsAdmin(user) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		h.searchCache.Clear()
		log.Info().Str("username", user.Username).Msg("search cache cleared")
		utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)

	case models.CacheActionWarm:
		if !access.IsAdmin(user) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		warmed := h.services.ContactsService.WarmCache(r.Context())
		log.Info().Str("username", user.Username).Int("warmed", warmed).Msg("search cache warmed")
		utils.WriteJSON(w, map[string]any{"success": true, "warmed": warmed}, http.StatusOK)

	default:
		log.Error().Str("action", request.Action).Msg("unknown cache action")
		http.Error(w, "unknown cache action", http.StatusBadRequest)
	}
}
