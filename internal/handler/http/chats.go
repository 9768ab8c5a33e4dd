package http

import (
	"net/http"

	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

func (h *Handler) createChat(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	var req models.CreateChatRequest
	if err = h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid chat request")
		return
	}

	chat, err := h.services.ChatService.Create(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err, "creating chat failed")
		return
	}

	utils.WriteJSON(w, chat, http.StatusCreated)
}

func (h *Handler) listChats(w http.ResponseWriter, r *http.Request) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return
	}

	chats, err := h.services.ChatService.List(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "listing chats failed")
		return
	}

	utils.WriteJSON(w, models.NewListResponse(chats), http.StatusOK)
}

func (h *Handler) getChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.chatParams(w, r)
	if !ok {
		return
	}

	chat, err := h.services.ChatService.Get(r.Context(), userID, chatID)
	if err != nil {
		h.writeError(w, r, err, "getting chat failed")
		return
	}

	utils.WriteJSON(w, chat, http.StatusOK)
}

func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.chatParams(w, r)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid message")
		return
	}

	chat, err := h.services.ChatService.SendMessage(r.Context(), userID, chatID, req.Message)
	if err != nil {
		h.writeError(w, r, err, "sending message failed")
		return
	}

	utils.WriteJSON(w, chat, http.StatusOK)
}

func (h *Handler) renameChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.chatParams(w, r)
	if !ok {
		return
	}

	var req models.RenameChatRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid chat title")
		return
	}

	chat, err := h.services.ChatService.Rename(r.Context(), userID, chatID, req.Title)
	if err != nil {
		h.writeError(w, r, err, "renaming chat failed")
		return
	}

	utils.WriteJSON(w, chat, http.StatusOK)
}

func (h *Handler) deleteChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.chatParams(w, r)
	if !ok {
		return
	}

	if err := h.services.ChatService.Delete(r.Context(), userID, chatID); err != nil {
		h.writeError(w, r, err, "deleting chat failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "chat deleted"}, http.StatusOK)
}

func (h *Handler) chatParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, err := sessionUserID(r)
	if err != nil {
		h.writeError(w, r, err, "no user in context")
		return 0, 0, false
	}

	chatID, err := pathID(r, "chatID")
	if err != nil {
		h.writeError(w, r, err, "invalid chat id")
		return 0, 0, false
	}

	return userID, chatID, true
}
