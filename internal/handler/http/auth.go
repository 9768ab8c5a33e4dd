package http

import (
	"net/http"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid registration request")
		return
	}

	user, token, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "user registration failed")
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")

	utils.SetCookie(w, h.cookie, token.SignedString, h.tokenTTL)
	utils.WriteJSON(w, models.AuthResponse{User: user.Summary()}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid login request")
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		h.writeError(w, r, err, "user login failed")
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user successfully logged in")

	utils.SetCookie(w, h.cookie, token.SignedString, h.tokenTTL)
	utils.WriteJSON(w, models.AuthResponse{User: user.Summary()}, http.StatusOK)
}

// me answers the resolve-session query for the cookie holder.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	tokenString := utils.CookieValue(r, h.cookie.Name)

	user, err := h.services.AuthService.ResolveSession(r.Context(), tokenString)
	if err != nil {
		h.writeError(w, r, err, "session resolution failed")
		return
	}

	utils.WriteJSON(w, models.AuthResponse{User: user.Summary()}, http.StatusOK)
}

// logout only drops the cookie; issued tokens stay valid until they expire.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.ClearCookie(w, h.cookie)
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	var req models.SetPasswordRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err, "invalid set-password request")
		return
	}

	if err := h.services.AuthService.SetPassword(r.Context(), req); err != nil {
		h.writeError(w, r, err, "setting password failed")
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password set"}, http.StatusOK)
}
