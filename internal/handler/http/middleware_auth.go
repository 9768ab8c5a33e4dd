package http

import (
	"net/http"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/service"
	"github.com/MKhiriev/health-mate/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based sessions.
//
// It reads the session token from the configured cookie and resolves it via
// [service.AuthService.ResolveSession], which also checks that the user
// still exists. On success the user's ID is stored in the request context
// (see [utils.WithUserID]) before delegating to the next handler.
//
// A missing cookie and every resolution failure are answered with 401 and
// the UNAUTHENTICATED error body. The token is never renewed here.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := utils.CookieValue(r, h.cookie.Name)
		if tokenString == "" {
			h.writeError(w, r, service.ErrUnauthenticated, "session cookie is missing")
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.ResolveSession(ctx, tokenString)
		if err != nil {
			h.writeError(w, r, err, "session resolution failed")
			return
		}

		log.Debug().Int64("user_id", user.UserID).Msg("session resolved")

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, user.UserID)))
	})
}

// sessionUserID returns the authenticated user's ID placed in the context by
// [Handler.auth]. Handlers behind the middleware can rely on it being set.
func sessionUserID(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, service.ErrUnauthenticated
	}
	return userID, nil
}
