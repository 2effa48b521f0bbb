package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// errorMapping binds a sentinel error to its API status and code.
type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{service.ErrIllegalAccess, http.StatusUnauthorized, app.CodeIllegalAccess},
	{service.ErrSessionMismatch, http.StatusUnauthorized, app.CodeIllegalAccess},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.CodeIllegalAccess},
	{service.ErrInvalidLogin, http.StatusUnauthorized, app.CodeInvalidLogin},
	{service.ErrDuplicateLogin, http.StatusConflict, app.CodeDuplicateLogin},
	{service.ErrInvalidLogout, http.StatusConflict, app.CodeInvalidLogout},
	{service.ErrNoCurrentPatient, http.StatusConflict, app.CodeNoCurrentPatient},
	{service.ErrIllegalOperation, http.StatusUnprocessableEntity, app.CodeIllegalOperation},
	{errInvalidPHN, http.StatusBadRequest, app.CodeBadRequest},
	{errInvalidNoteCode, http.StatusBadRequest, app.CodeBadRequest},
}

// statusFromError returns the API status and code for err. Unknown errors,
// persistence failures included, are 500 internal_error.
func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}

	return http.StatusInternalServerError, app.CodeInternalError
}

// writeError logs err and writes its API error body. Internal errors are
// reported with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("unexpected error")
		message = app.MsgInternalServerError
	} else {
		logger.FromRequest(r).Debug().Err(err).Str("code", code).Send()
	}

	h.writeErrorCode(w, r, status, code, message)
}

func (h *Handler) writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Code: code, Message: message}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeErrorCode(w, r, http.StatusNotFound, app.CodeNotFound, app.MsgRouteNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeErrorCode(w, r, http.StatusMethodNotAllowed, app.CodeMethodNotAllowed, app.MsgMethodNotAllowed)
}
