package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
)

// googleLogin redirects the browser to the consent screen. The random state
// is remembered in a short-lived cookie and checked by the callback.
func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := utils.RandomState()
	if err != nil {
		h.writeError(w, r, err, "generating OAuth state failed")
		return
	}

	utils.SetCookie(w, h.stateCookie(), state, stateCookieTTL)
	http.Redirect(w, r, h.services.FederatedAuthService.AuthURL(state), http.StatusTemporaryRedirect)
}

// googleCallback exchanges the authorization code, issues the session
// cookie and sends the browser back to the frontend. The state query
// parameter must equal the state cookie set by googleLogin.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	query := r.URL.Query()
	expected := utils.CookieValue(r, stateCookieName)
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(query.Get("state"))) != 1 {
		h.writeError(w, r, ErrInvalidOAuthState, "OAuth state mismatch")
		return
	}
	utils.ClearCookie(w, h.stateCookie())

	user, token, err := h.services.FederatedAuthService.Exchange(r.Context(), query.Get("code"))
	if err != nil {
		h.writeError(w, r, err, "federated sign-in failed")
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed in with Google")

	utils.SetCookie(w, h.cookie, token.SignedString, h.tokenTTL)
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}
