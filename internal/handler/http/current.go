package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// getCurrentPatient answers 404 not_found when no patient is selected.
func (h *Handler) getCurrentPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := h.controller.GetCurrentPatient(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if patient == nil {
		h.writeErrorCode(w, r, http.StatusNotFound, app.CodeNotFound, app.MsgNoCurrentPatient)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) setCurrentPatient(w http.ResponseWriter, r *http.Request) {
	var req models.CurrentPatientRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid current patient request")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	if err := h.controller.SetCurrentPatient(r.Context(), req.PHN); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unsetCurrentPatient(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.UnsetCurrentPatient(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
