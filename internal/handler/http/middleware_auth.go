package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/service"
	"github.com/MKhiriev/go-user-directory/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.Authenticate] and stores the token subject in the
// request context under [utils.UsernameCtxKey].
//
// Every failure answers 401 with the same body, whatever the reason was.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthorized, err))
			return
		}

		ctx := r.Context()
		username, ok := h.services.AuthService.Authenticate(ctx, tokenString)
		if !ok {
			writeError(w, r, service.ErrUnauthorized)
			return
		}

		logger.FromRequest(r).Debug().Str("username", username).Msg("request authenticated")
		next.ServeHTTP(w, r.WithContext(utils.WithUsername(ctx, username)))
	})
}

// requireRole lets the request through only when the authenticated user
// currently holds role. The role is read from the store on every request, so
// role changes apply to sessions issued before them.
func (h *Handler) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := utils.GetUsernameFromContext(r.Context())
			if !ok {
				writeError(w, r, service.ErrUnauthorized)
				return
			}

			err := h.services.AuthService.Authorize(r.Context(), username, role)
			if errors.Is(err, service.ErrForbidden) {
				logger.FromRequest(r).Info().Str("username", username).Str("role", role).Msg("access denied")
			}
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
