package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.buildInfo.Response()
	info.Version = orNA(info.Version)
	info.Date = orNA(info.Date)
	info.Commit = orNA(info.Commit)

	utils.WriteJSON(w, info, http.StatusOK)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
