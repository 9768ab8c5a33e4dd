package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, the one-time password
// setup for federated accounts, and the session token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hashCost is the bcrypt cost used for new password hashes.
	hashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hashCost:       cfg.PasswordHashCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Register creates a password account and issues a session token.
//
// Returns:
//   - ErrAccountExists if a password account with this email exists, or a
//     concurrent registration won the race.
//   - ErrPasswordNotSet if the email belongs to a federated account with no
//     password, so the client can offer to set one.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	existing, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.HasPassword():
		return models.User{}, models.Token{}, ErrAccountExists
	case err == nil:
		return models.User{}, models.Token{}, ErrPasswordNotSet
	case !errors.Is(err, store.ErrNoUserWasFound):
		log.Err(err).Str("func", "*authService.Register").Msg("user lookup failed")
		return models.User{}, models.Token{}, storeError("user lookup failed", err)
	}

	hash, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.User{}, models.Token{}, err
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hash,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.User{}, models.Token{}, ErrAccountExists
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.User{}, models.Token{}, storeError("user creation ended with error", err)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, token, nil
}

// Login verifies an email/password pair and issues a session token.
//
// Returns ErrInvalidCredentials for an unknown email, ErrPasswordNotSet for
// a federated account without a password, and ErrWrongPassword when the
// hash comparison fails.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, models.Token{}, storeError("user search by email failed", err)
	}

	if !user.HasPassword() {
		return models.User{}, models.Token{}, ErrPasswordNotSet
	}

	if err = utils.ComparePassword(*user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			log.Warn().Int64("user_id", user.UserID).Msg("wrong password")
			return models.User{}, models.Token{}, ErrWrongPassword
		}
		log.Err(err).Int64("user_id", user.UserID).Msg("stored password hash is unusable")
		return models.User{}, models.Token{}, err
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// SetPassword stores a first password for an account created through
// federated login. The store update only matches rows without a hash, so of
// two concurrent calls exactly one succeeds.
func (a *authService) SetPassword(ctx context.Context, req models.SetPasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.SetPassword").Msg("user search by email failed")
		return storeError("user search by email failed", err)
	}

	if user.HasPassword() {
		return ErrPasswordAlreadySet
	}

	hash, err := utils.HashPassword(req.Password, a.hashCost)
	if err != nil {
		return err
	}

	err = a.userRepository.SetPasswordHash(ctx, user.UserID, hash)
	if errors.Is(err, store.ErrPasswordAlreadySet) {
		return ErrPasswordAlreadySet
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.SetPassword").Int64("user_id", user.UserID).Msg("saving password failed")
		return storeError("saving password failed", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("password set for federated account")
	return nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) ResolveSession(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return models.User{}, ErrUnauthenticated
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Int64("user_id", token.UserID).Msg("token refers to a deleted user")
		return models.User{}, ErrUnauthenticated
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ResolveSession").Int64("user_id", token.UserID).Msg("user lookup failed")
		return models.User{}, storeError("user lookup failed", err)
	}

	return user, nil
}
