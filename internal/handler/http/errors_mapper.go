package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/warehouse-keeper/internal/logger"
	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
)

const internalServerErrorMessage = "internal server error"

// errorStatuses is matched in order with errors.Is: specific errors first,
// then error kinds.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrEmailAlreadyInUse, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusBadRequest},
	{service.ErrImageUpload, http.StatusInternalServerError},

	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrConflict, http.StatusBadRequest},
	{service.ErrAuth, http.StatusUnauthorized},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrExpired, http.StatusNotFound},
	{service.ErrEmailDelivery, http.StatusInternalServerError},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidNumber, http.StatusBadRequest},
	{ErrInvalidForm, http.StatusBadRequest},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the text shown to API clients. Internal failures
// are never described.
func messageFromError(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Error()
	}

	for _, target := range []error{ErrInvalidJSON, ErrInvalidNumber, ErrInvalidForm, service.ErrImageUpload} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return internalServerErrorMessage
}

// writeError logs err and writes it as a {"message": ...} response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteMessage(w, messageFromError(err), status)
}
