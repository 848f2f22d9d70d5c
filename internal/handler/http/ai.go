package http

import (
	"encoding/json"
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

func (h *Handler) aiChat(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var request models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.AIService.Chat(r.Context(), user, request)
	if err != nil {
		h.respondServiceError(w, r, err, "ai chat failed")
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) aiParseProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if _, ok := h.userFromRequest(w, r); !ok {
		return
	}

	var request models.ParseProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	profile, err := h.services.AIService.ParseProfile(r.Context(), request)
	if err != nil {
		h.respondServiceError(w, r, err, "profile parsing failed")
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
