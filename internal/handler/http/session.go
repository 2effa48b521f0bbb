package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// login opens the controller session and returns a bearer token bound to
// it, both in the body and in the Authorization header.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		log.Err(err).Msg("invalid login request")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	if err := h.controller.Login(ctx, req.Username, req.Password); err != nil {
		h.writeError(w, r, err)
		return
	}

	session, _ := h.controller.Session(ctx)
	token, err := h.tokens.CreateToken(ctx, session)
	if err != nil {
		// do not leave a session nobody holds a token for
		if logoutErr := h.controller.Logout(ctx); logoutErr != nil {
			log.Err(logoutErr).Msg("error closing session after token failure")
		}
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token.String())
	utils.WriteJSON(w, models.TokenResponse{Token: token.String()}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Logout(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
