package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

func (h *Handler) listConnections(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	connections, err := h.services.ContactsService.ListConnections(r.Context(), user, chi.URLParam(r, "contactID"))
	if err != nil {
		h.respondServiceError(w, r, err, "listing connections failed")
		return
	}

	utils.WriteJSON(w, connections, http.StatusOK)
}

func (h *Handler) addConnection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var request models.ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	connection, err := h.services.ContactsService.AddConnection(r.Context(), user, chi.URLParam(r, "contactID"), request)
	if err != nil {
		h.respondServiceError(w, r, err, "connection creation failed")
		return
	}

	utils.WriteJSON(w, connection, http.StatusCreated)
}

func (h *Handler) removeConnection(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	contactID := chi.URLParam(r, "contactID")
	targetContactID := chi.URLParam(r, "targetContactID")

	if err := h.services.ContactsService.RemoveConnection(r.Context(), user, contactID, targetContactID); err != nil {
		h.respondServiceError(w, r, err, "connection deletion failed")
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
