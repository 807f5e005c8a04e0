package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/warehouse-keeper/models"
)

const sessionCookieName = "token"

// setSessionCookie stores the session credential in an HttpOnly cookie that
// expires together with the token.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := h.sessionCookie(token.SignedString)
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}
	http.SetCookie(w, cookie)
}

// clearSessionCookie expires the session cookie immediately.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	cookie := h.sessionCookie("")
	cookie.Expires = time.Unix(0, 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// sessionCookie builds the cookie shared by login and logout. Browsers drop
// SameSite=None cookies without Secure, so development falls back to Lax.
func (h *Handler) sessionCookie(value string) *http.Cookie {
	sameSite := http.SameSiteNoneMode
	if !h.secureCookies {
		sameSite = http.SameSiteLaxMode
	}

	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: sameSite,
	}
}
