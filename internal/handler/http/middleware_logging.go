package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
)

// withLogging writes one access-log line per request. Requests that passed
// the session middleware also carry the caller's user id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		tracker := &sessionTracker{}
		next.ServeHTTP(lw, r.WithContext(withSessionTracker(r.Context(), tracker)))

		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		if tracker.userID != "" {
			event = event.Str(sessionUserLogKey, tracker.userID)
		}

		event.
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

// trackSessionUser records the authenticated user for the access log of the
// enclosing request, if any.
func trackSessionUser(r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return
	}
	if t, ok := r.Context().Value(sessionTrackerKey{}).(*sessionTracker); ok {
		t.userID = userID
	}
}
