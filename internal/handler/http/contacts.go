package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

// userFromRequest recovers the authenticated user snapshot placed in the
// context by the auth middleware. A missing snapshot means the route was
// wired outside the auth group, which is a programming error; the request
// is rejected with 401 either way.
func (h *Handler) userFromRequest(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no authenticated user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return nil, false
	}

	return user, true
}

// respondServiceError maps a service/store error onto its HTTP status and
// writes the response. Client errors carry the underlying message; server
// errors are masked with the generic status text.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}

	http.Error(w, err.Error(), status)
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	contacts, err := h.services.ContactsService.List(r.Context(), user)
	if err != nil {
		h.respondServiceError(w, r, err, "listing contacts failed")
		return
	}

	utils.WriteJSON(w, contacts, http.StatusOK)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	contact, err := h.services.ContactsService.Get(r.Context(), user, chi.URLParam(r, "contactID"))
	if err != nil {
		h.respondServiceError(w, r, err, "contact lookup failed")
		return
	}

	utils.WriteJSON(w, contact, http.StatusOK)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ContactsService.Create(r.Context(), user, contact)
	if err != nil {
		h.respondServiceError(w, r, err, "contact creation failed")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var update models.ContactUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ContactsService.Update(r.Context(), user, chi.URLParam(r, "contactID"), update)
	if err != nil {
		h.respondServiceError(w, r, err, "contact update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// contactUpdateBody is the collection form of a contact update: the target
// id travels in the body next to the fields to change.
type contactUpdateBody struct {
	ID string `json:"id"`
	models.ContactUpdate
}

type contactDeleteBody struct {
	ID string `json:"id"`
}

// updateContactByBody serves PUT /api/contacts, reading the target id from
// the JSON body instead of the URL.
func (h *Handler) updateContactByBody(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var body contactUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if body.ID == "" {
		http.Error(w, "contact id is required", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ContactsService.Update(r.Context(), user, body.ID, body.ContactUpdate)
	if err != nil {
		h.respondServiceError(w, r, err, "contact update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

// deleteContactByBody serves DELETE /api/contacts with a `{"id": ...}` body.
func (h *Handler) deleteContactByBody(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	var body contactDeleteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if body.ID == "" {
		http.Error(w, "contact id is required", http.StatusBadRequest)
		return
	}

	if err := h.services.ContactsService.Delete(r.Context(), user, body.ID); err != nil {
		h.respondServiceError(w, r, err, "contact deletion failed")
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	user, ok := h.userFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.ContactsService.Delete(r.Context(), user, chi.URLParam(r, "contactID")); err != nil {
		h.respondServiceError(w, r, err, "contact deletion failed")
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
