package http

import (
	"net/http"

	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/models"
)

const msgContactEmailSent = "Email Sent"

func (h *Handler) contactUs(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	var req models.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ContactService.ContactUs(r.Context(), userID, req); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.SuccessResponse{Success: true, Message: msgContactEmailSent}, http.StatusOK)
}
