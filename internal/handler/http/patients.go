package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// listPatients lists every patient, or those whose name contains the
// "name" query parameter when it is present.
func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		patients []models.Patient
		err      error
	)
	if r.URL.Query().Has("name") {
		patients, err = h.controller.RetrievePatients(ctx, r.URL.Query().Get("name"))
	} else {
		patients, err = h.controller.ListPatients(ctx)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, patients, http.StatusOK)
}

func (h *Handler) createPatient(w http.ResponseWriter, r *http.Request) {
	var patient models.Patient
	if err := decodeAndValidate(r, &patient); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid patient")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	created, err := h.controller.CreatePatient(r.Context(), patient)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

// searchPatient answers 404 not_found when the PHN is absent.
func (h *Handler) searchPatient(w http.ResponseWriter, r *http.Request) {
	phn, err := int64Param(r, "phn", errInvalidPHN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	patient, err := h.controller.SearchPatient(r.Context(), phn)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if patient == nil {
		h.writeErrorCode(w, r, http.StatusNotFound, app.CodeNotFound, app.MsgPatientNotFound)
		return
	}

	utils.WriteJSON(w, patient, http.StatusOK)
}

func (h *Handler) updatePatient(w http.ResponseWriter, r *http.Request) {
	phn, err := int64Param(r, "phn", errInvalidPHN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var patient models.Patient
	if err = decodeAndValidate(r, &patient); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid patient")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	if err = h.controller.UpdatePatient(r.Context(), phn, patient); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deletePatient(w http.ResponseWriter, r *http.Request) {
	phn, err := int64Param(r, "phn", errInvalidPHN)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.controller.DeletePatient(r.Context(), phn); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
