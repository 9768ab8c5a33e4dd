package http

import (
	"time"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/service"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/internal/validators"
)

// stateCookieName holds the OAuth state between the consent redirect and
// the callback.
const stateCookieName = "oauth_state"

const stateCookieTTL = 10 * time.Minute

type Handler struct {
	services  *service.Services
	validator validators.Validator

	cookie   utils.CookieSettings
	tokenTTL time.Duration

	frontendURL    string
	allowedOrigins []string
	requestTimeout time.Duration
	maxUploadSize  int64

	metrics *httpMetrics

	logger *logger.Logger
}

func NewHandler(services *service.Services, validator validators.Validator, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		validator: validator,
		cookie: utils.CookieSettings{
			Name:     cfg.Server.CookieName,
			Secure:   cfg.Server.CookieSecure,
			SameSite: cfg.Server.SameSite(),
		},
		tokenTTL:       cfg.App.TokenDuration,
		frontendURL:    cfg.Server.FrontendURL,
		allowedOrigins: cfg.Server.AllowedOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		maxUploadSize:  cfg.Server.MaxUploadSize,
		metrics:        newHTTPMetrics(),
		logger:         logger,
	}
}

// stateCookie shares the session cookie's attributes under a different name.
func (h *Handler) stateCookie() utils.CookieSettings {
	settings := h.cookie
	settings.Name = stateCookieName
	return settings
}
