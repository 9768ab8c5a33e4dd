package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	ErrEmptyResponse     = errors.New("empty response from collaborator")
	ErrMissingEmail      = errors.New("identity provider returned no email")
	ErrUnverifiedEmail   = errors.New("identity provider email is not verified")
	ErrInvalidAdapterCfg = errors.New("invalid adapter configuration")
)
