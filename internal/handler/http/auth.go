package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, user, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrUnknownTeam):
			log.Err(err).Msg("unknown or mismatched team")
			http.Error(w, "invalid login/password", http.StatusUnauthorized)
			return
		case errors.Is(err, store.ErrNoUserWasFound) || errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("no user was found/wrong password")
			http.Error(w, "invalid login/password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", user.UserID).Str("username", user.Username).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString, User: &user}, http.StatusOK)
}

// logout acknowledges the end of a session. Tokens are stateless and
// carry their own expiry, so there is nothing to revoke server-side; the
// client discards the token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		log.Info().Str("username", user.Username).Msg("user logged out")
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
