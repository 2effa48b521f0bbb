package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/app"
	"github.com/MKhiriev/go-clinic/internal/logger"
	"github.com/MKhiriev/go-clinic/internal/utils"
	"github.com/MKhiriev/go-clinic/models"
)

// listNotes lists the current patient's notes newest first, or those whose
// text contains the "text" query parameter, in storage order, when it is
// present.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		notes []models.Note
		err   error
	)
	if r.URL.Query().Has("text") {
		notes, err = h.controller.RetrieveNotes(ctx, r.URL.Query().Get("text"))
	} else {
		notes, err = h.controller.ListNotes(ctx)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteRequest
	if err := decodeAndValidate(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid note request")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	note, err := h.controller.CreateNote(r.Context(), req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

// searchNote answers 404 not_found when the code is absent.
func (h *Handler) searchNote(w http.ResponseWriter, r *http.Request) {
	code, err := int64Param(r, "code", errInvalidNoteCode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	note, err := h.controller.SearchNote(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if note == nil {
		h.writeErrorCode(w, r, http.StatusNotFound, app.CodeNotFound, app.MsgNoteNotFound)
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	code, err := int64Param(r, "code", errInvalidNoteCode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.NoteRequest
	if err = decodeAndValidate(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid note request")
		h.writeErrorCode(w, r, http.StatusBadRequest, app.CodeBadRequest, app.MsgInvalidDataProvided)
		return
	}

	found, err := h.controller.UpdateNote(r.Context(), code, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UpdateResult{Found: found}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	code, err := int64Param(r, "code", errInvalidNoteCode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	found, err := h.controller.DeleteNote(r.Context(), code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UpdateResult{Found: found}, http.StatusOK)
}
