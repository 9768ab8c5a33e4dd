package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/health-mate/internal/adapter"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/internal/validators"
	"github.com/MKhiriev/health-mate/models"
)

type federatedAuthService struct {
	provider       adapter.IdentityProvider
	userRepository store.UserRepository
	authService    AuthService

	logger *logger.Logger
}

// NewFederatedAuthService links identities returned by provider to local
// accounts by email. Session tokens are issued by authService so both login
// paths produce identical tokens.
func NewFederatedAuthService(provider adapter.IdentityProvider, userRepository store.UserRepository, authService AuthService, logger *logger.Logger) FederatedAuthService {
	return &federatedAuthService{
		provider:       provider,
		userRepository: userRepository,
		authService:    authService,
		logger:         logger,
	}
}

func (f *federatedAuthService) AuthURL(state string) string {
	return f.provider.AuthCodeURL(state)
}

// Exchange completes the authorization-code handshake. The account is found
// or created atomically by email; a created account has no password. Any
// provider failure is reported as ErrAuthProvider and never retried.
func (f *federatedAuthService) Exchange(ctx context.Context, code string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	code = strings.TrimSpace(code)
	if code == "" {
		return models.User{}, models.Token{}, &validators.FieldError{Field: "code", Err: ErrEmptyAuthCode}
	}

	profile, err := f.provider.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Str("func", "*federatedAuthService.Exchange").Msg("identity provider exchange failed")
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrAuthProvider, err)
	}

	user, err := f.userRepository.UpsertFederatedUser(ctx, profile)
	if err != nil {
		log.Err(err).Str("func", "*federatedAuthService.Exchange").Msg("find-or-create user failed")
		return models.User{}, models.Token{}, storeError("find-or-create user failed", err)
	}

	token, err := f.authService.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Int64("user_id", user.UserID).Bool("has_password", user.HasPassword()).Msg("federated login")
	return user, token, nil
}
