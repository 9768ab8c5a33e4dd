package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type googleIdentityProvider struct {
	config      *oauth2.Config
	userInfoURL string
	logger      *logger.Logger
}

// NewGoogleIdentityProvider constructs an [IdentityProvider] for Google
// sign-in requesting the profile and email scopes.
func NewGoogleIdentityProvider(cfg config.OAuth, log *logger.Logger) IdentityProvider {
	return &googleIdentityProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
		logger:      log,
	}
}

func (g *googleIdentityProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// Exchange implements [IdentityProvider]. It trades code for an access
// token and reads the profile from the userinfo endpoint.
func (g *googleIdentityProvider) Exchange(ctx context.Context, code string) (models.ExternalProfile, error) {
	log := logger.FromContext(ctx)

	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*googleIdentityProvider.Exchange").Msg("failed to exchange authorization code")
		return models.ExternalProfile{}, fmt.Errorf("exchange code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return models.ExternalProfile{}, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		log.Err(err).Str("func", "*googleIdentityProvider.Exchange").Msg("failed to fetch user info")
		return models.ExternalProfile{}, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ExternalProfile{}, fmt.Errorf("%w: userinfo status %d", ErrBadGateway, resp.StatusCode)
	}

	var info googleUserInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.ExternalProfile{}, fmt.Errorf("decode user info: %w", err)
	}

	email := strings.TrimSpace(info.Email)
	if email == "" {
		return models.ExternalProfile{}, ErrMissingEmail
	}
	// email links the identity to an existing account
	if !info.VerifiedEmail {
		log.Warn().Str("func", "*googleIdentityProvider.Exchange").Msg("rejected unverified Google email")
		return models.ExternalProfile{}, ErrUnverifiedEmail
	}

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = email
	}

	return models.ExternalProfile{Email: email, Name: name}, nil
}
