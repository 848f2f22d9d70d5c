package http

import (
	"errors"
	"net/http"

	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrUnknownTeam:             http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrInvalidTier:             http.StatusBadRequest,
	service.ErrSelfConnection:          http.StatusBadRequest,

	store.ErrNoUserWasFound:          http.StatusUnauthorized,
	store.ErrUsernameAlreadyExists:   http.StatusConflict,
	store.ErrContactNotFound:         http.StatusNotFound,
	store.ErrConnectionNotFound:      http.StatusNotFound,
	store.ErrConnectionAlreadyExists: http.StatusConflict,
	store.ErrContactReferenceBroken:  http.StatusNotFound,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
