package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Compress(5))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Get("/auth/me", h.me)
		r.Post("/auth/logout", h.logout)
		r.Post("/auth/set-password", h.setPassword)
		r.Get("/auth/google/login", h.googleLogin)
		r.Get("/auth/google", h.googleCallback)

		r.Get("/version", h.getServerVersion)
		r.Get("/health", h.health)
		r.Method(http.MethodGet, "/metrics", h.metrics.handler())
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/chats", func(r chi.Router) {
			r.Post("/", h.createChat)
			r.Get("/", h.listChats)
			r.Get("/{chatID}", h.getChat)
			r.Post("/{chatID}/messages", h.sendMessage)
			r.Put("/{chatID}", h.renameChat)
			r.Delete("/{chatID}", h.deleteChat)
		})

		r.Route("/pdfs", func(r chi.Router) {
			r.Post("/upload", h.uploadFile)
			r.Get("/", h.listFiles)
			r.Get("/{fileID}", h.getFile)
			r.Delete("/{fileID}", h.deleteFile)
		})

		r.Route("/vitals", func(r chi.Router) {
			r.Post("/", h.recordVital)
			r.Get("/", h.listVitals)
		})

		r.Route("/share", func(r chi.Router) {
			r.Post("/grant", h.grantAccess)
			r.Delete("/revoke/{viewerID}", h.revokeAccess)
			r.Get("/shared-with-me", h.sharedWithMe)
			r.Get("/shared-by-me", h.sharedByMe)
			r.Get("/search", h.searchUsers)
			r.Get("/vitals/{ownerID}", h.sharedVitals)
			r.Get("/pdfs/{ownerID}", h.sharedFiles)
			r.Get("/chats/{ownerID}", h.sharedChats)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
