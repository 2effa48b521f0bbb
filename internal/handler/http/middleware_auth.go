package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/service"
	"github.com/MKhiriev/go-clinic/internal/utils"
)

// auth enforces that the request carries a bearer token issued for the
// controller's active session.
//
// The request is rejected with 401 and code illegal_access when:
//   - the "Authorization" header is absent or malformed;
//   - the token is expired, wrongly signed or otherwise invalid;
//   - no session is active, or the token's session ID differs from it.
//
// On success the parsed token is stored in the request context under
// [utils.TokenCtxKey]. It must run inside serialize.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			h.writeErrorCode(w, r, http.StatusUnauthorized, app.CodeIllegalAccess, app.MsgMissingToken)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			h.writeErrorCode(w, r, http.StatusUnauthorized, app.CodeIllegalAccess, app.MsgMissingToken)
			return
		}

		token, err := h.tokens.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.writeErrorCode(w, r, http.StatusUnauthorized, app.CodeIllegalAccess, app.MsgTokenIsInvalid)
			return
		}

		session, ok := h.controller.Session(ctx)
		if !ok {
			h.writeError(w, r, service.ErrIllegalAccess)
			return
		}
		if session.ID != token.SessionID() {
			log.Warn().Str("session_id", token.SessionID()).Msg("token of a closed session")
			h.writeError(w, r, service.ErrSessionMismatch)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithToken(ctx, token)))
	})
}
