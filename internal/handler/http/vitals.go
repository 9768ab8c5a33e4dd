package http

import (
	"net/http"

	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

func (h *Handler) recordVital(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	var vital models.Vital
	if err = h.decodeJSON(w, r, &vital); err != nil {
		h.writeError(w, r, err, "invalid vital")
		return
	}

	saved, err := h.services.VitalService.Record(r.Context(), userID, vital)
	if err != nil {
		h.writeError(w, r, err, "recording vital failed")
		return
	}

	utils.WriteJSON(w, saved, http.StatusCreated)
}

func (h *Handler) listVitals(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	vitals, err := h.services.VitalService.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "listing vitals failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(vitals), http.StatusOK)
}
