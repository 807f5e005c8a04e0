package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces session authentication.
//
// The session credential is taken from the session cookie or, failing that,
// from an "Authorization: Bearer <token>" header. It is resolved to a user
// via [service.AuthService.Authorize], and on success the user is stored in
// the request context with [utils.WithUser] before delegating to the next
// handler.
//
// Requests without a usable credential are rejected with HTTP 401 and the
// message of [service.ErrNotAuthorized].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		token, err := sessionTokenFromRequest(r)
		if err != nil {
			log.Debug().Err(err).Msg("request without session credential")
			writeError(w, r, service.ErrNotAuthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authorize(ctx, token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		r = r.WithContext(utils.WithUser(ctx, user))
		trackSessionUser(r)
		next.ServeHTTP(w, r)
	})
}

// sessionTokenFromRequest returns the session credential carried by r.
// The cookie wins over the "Authorization" header.
func sessionTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoSessionToken
	}

	return getTokenFromAuthHeader(authHeader)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the header contains fewer than
//     two space-separated parts.
//   - [ErrEmptyToken] if the second part is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
