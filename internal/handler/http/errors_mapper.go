package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/app"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                   http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:      http.StatusUnauthorized,
	ErrRouteNotFound:                 http.StatusNotFound,
	ErrMethodNotAllowed:              http.StatusMethodNotAllowed,
	validators.ErrMissingFields:      http.StatusBadRequest,
	validators.ErrInvalidPageRequest: http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrUnauthorized:          http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
}

// errorMessageMap holds the public messages. Errors missing here are
// reported with the plain status text so internal details never leak.
var errorMessageMap = map[error]string{
	ErrInvalidJSON:                   app.MsgInvalidJSON,
	ErrEmptyAuthorizationHeader:      app.MsgUnauthorized,
	ErrRouteNotFound:                 app.MsgNotFound,
	ErrMethodNotAllowed:              app.MsgMethodNotAllowed,
	validators.ErrMissingFields:      app.MsgMissingFields,
	validators.ErrInvalidPageRequest: app.MsgInvalidPageRequest,
	service.ErrInvalidCredentials:    app.MsgInvalidCredentials,
	service.ErrUnauthorized:          app.MsgUnauthorized,
	service.ErrForbidden:             app.MsgForbidden,
	service.ErrUserNotFound:          app.MsgUserNotFound,
	service.ErrInvalidDataProvided:   app.MsgInvalidDataProvided,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return http.StatusText(statusFromError(err))
}

// writeError logs err and answers with its status and public message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: messageFromError(err)}, status)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrRouteNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, ErrMethodNotAllowed)
}
