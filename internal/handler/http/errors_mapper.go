package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/service"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/internal/validators"
	"github.com/MKhiriev/health-mate/models"
)

type errorClass struct {
	target error
	status int
	code   string
}

// errorTable is checked in order; the first matching target wins. Service
// errors that wrap a validation failure must therefore come after it.
var errorTable = []errorClass{
	{validators.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidJSON, http.StatusBadRequest, "INVALID_JSON"},
	{ErrMissingFile, http.StatusBadRequest, "VALIDATION_ERROR"},
	{ErrInvalidOAuthState, http.StatusBadRequest, "INVALID_OAUTH_STATE"},
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrWrongPassword, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{service.ErrPasswordNotSet, http.StatusUnauthorized, "PASSWORD_NOT_SET"},
	{service.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "UNAUTHENTICATED"},

	{service.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
	{service.ErrSelfShareForbidden, http.StatusForbidden, "SELF_SHARE_FORBIDDEN"},

	{ErrRouteNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{service.ErrGrantNotFound, http.StatusNotFound, "GRANT_NOT_FOUND"},
	{service.ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
	{service.ErrChatNotFound, http.StatusNotFound, "CHAT_NOT_FOUND"},

	{service.ErrAccountExists, http.StatusConflict, "ACCOUNT_EXISTS"},
	{service.ErrPasswordAlreadySet, http.StatusConflict, "PASSWORD_ALREADY_SET"},

	{service.ErrDependency, http.StatusBadGateway, "DEPENDENCY_FAILED"},
	{service.ErrAuthProvider, http.StatusBadGateway, "AUTH_PROVIDER_FAILED"},
	{service.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE"},
}

var internalError = errorClass{status: http.StatusInternalServerError, code: "INTERNAL_ERROR"}

// classifyError returns the first matching entry of errorTable, or
// internalError with a nil target.
func classifyError(err error) errorClass {
	for _, class := range errorTable {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalError
}

func statusFromError(err error) int {
	return classifyError(err).status
}

// errorResponse builds the client-facing body for err. Server-side failures
// get a generic message so that internals never leak.
func errorResponse(err error) (int, models.ErrorResponse) {
	class := classifyError(err)
	if class.status >= http.StatusInternalServerError {
		message := http.StatusText(class.status)
		switch class.target {
		case service.ErrDependency, service.ErrAuthProvider, service.ErrUnavailable:
			message = class.target.Error()
		}
		return class.status, models.ErrorResponse{Error: message, Code: class.code}
	}

	resp := models.ErrorResponse{Error: class.target.Error(), Code: class.code}

	var fieldErr *validators.FieldError
	if errors.As(err, &fieldErr) {
		resp.Error = fieldErr.Err.Error()
		resp.Field = fieldErr.Field
	}

	return class.status, resp
}

// writeError logs err with the request-scoped logger and writes the
// structured error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)

	status, resp := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg(msg)
	} else {
		log.Debug().Err(err).Int("status", status).Msg(msg)
	}

	utils.WriteJSON(w, resp, status)
}
