package service

import "errors"

var (
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrPasswordNotSet     = errors.New("this account has no password; sign in with Google or set a password")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordAlreadySet = errors.New("password is already set for this account")

	ErrUnauthenticated         = errors.New("authentication required")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrAccessDenied       = errors.New("access denied")
	ErrSelfShareForbidden = errors.New("you cannot share data with yourself")
	ErrGrantNotFound      = errors.New("access grant not found")

	ErrFileNotFound = errors.New("file not found")
	ErrChatNotFound = errors.New("chat not found")

	ErrDependency    = errors.New("an external service failed")
	ErrAuthProvider  = errors.New("identity provider failed")
	ErrEmptyAuthCode = errors.New("authorization code is required")
	ErrUnavailable   = errors.New("service temporarily unavailable")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
