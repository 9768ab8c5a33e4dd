package http

import (
	"net/http"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

func (h *Handler) grantAccess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	ownerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	var req models.GrantRequest
	if err = h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid grant request")
		return
	}

	grant, err := h.services.ShareService.Grant(r.Context(), ownerID, req.Email, req.Permissions)
	if err != nil {
		h.writeError(w, r, err, "granting access failed")
		return
	}

	log.Info().Int64("owner_id", ownerID).Int64("viewer_id", grant.ViewerID).Msg("access granted")

	utils.WriteJSON(w, grant, http.StatusOK)
}

func (h *Handler) revokeAccess(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	viewerID, err := pathID(r, "viewerID")
	if err != nil {
		h.writeError(w, r, err, "invalid viewer id")
		return
	}

	if err = h.services.ShareService.Revoke(r.Context(), ownerID, viewerID); err != nil {
		h.writeError(w, r, err, "revoking access failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "access revoked"}, http.StatusOK)
}

func (h *Handler) sharedWithMe(w http.ResponseWriter, r *http.Request) {
	viewerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	grants, err := h.services.ShareService.ListGrantedToMe(r.Context(), viewerID)
	if err != nil {
		h.writeError(w, r, err, "listing grants failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(grants), http.StatusOK)
}

func (h *Handler) sharedByMe(w http.ResponseWriter, r *http.Request) {
	ownerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	grants, err := h.services.ShareService.ListGrantedByMe(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err, "listing grants failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(grants), http.StatusOK)
}

func (h *Handler) searchUsers(w http.ResponseWriter, r *http.Request) {
	callerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	users, err := h.services.ShareService.Search(r.Context(), callerID, r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err, "user search failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(users), http.StatusOK)
}

func (h *Handler) sharedVitals(w http.ResponseWriter, r *http.Request) {
	viewerID, ownerID, ok := h.sharedParams(w, r)
	if !ok {
		return
	}

	vitals, err := h.services.VitalService.ListShared(r.Context(), viewerID, ownerID)
	if err != nil {
		h.writeError(w, r, err, "listing shared vitals failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(vitals), http.StatusOK)
}

func (h *Handler) sharedFiles(w http.ResponseWriter, r *http.Request) {
	viewerID, ownerID, ok := h.sharedParams(w, r)
	if !ok {
		return
	}

	files, err := h.services.FileService.ListShared(r.Context(), viewerID, ownerID)
	if err != nil {
		h.writeError(w, r, err, "listing shared files failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(files), http.StatusOK)
}

func (h *Handler) sharedChats(w http.ResponseWriter, r *http.Request) {
	viewerID, ownerID, ok := h.sharedParams(w, r)
	if !ok {
		return
	}

	chats, err := h.services.ChatService.ListShared(r.Context(), viewerID, ownerID)
	if err != nil {
		h.writeError(w, r, err, "listing shared chats failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(chats), http.StatusOK)
}

// sharedParams reads the viewer from the session and the owner from the
// path. It writes the error response itself and reports false on failure.
func (h *Handler) sharedParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	viewerID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return 0, 0, false
	}

	ownerID, err := pathID(r, "ownerID")
	if err != nil {
		h.writeError(w, r, err, "invalid owner id")
		return 0, 0, false
	}

	return viewerID, ownerID, true
}
