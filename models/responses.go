package models

// ErrorResponse is the structured JSON body written for every failed request.
type ErrorResponse struct {
	// Error is a human-readable message safe to show to the client.
	Error string `json:"error"`

	// Code is a stable machine-readable error identifier
	// (e.g. "PASSWORD_NOT_SET") the client can branch on.
	Code string `json:"code"`

	// Field names the offending input field for validation errors.
	Field string `json:"field,omitempty"`
}

// AuthResponse is returned by the endpoints that establish or resolve a
// session. The token itself travels only in the HTTP-only cookie.
type AuthResponse struct {
	User UserSummary `json:"user"`
}

// MessageResponse is a minimal acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps a collection together with its length.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Length int `json:"length"`
}

// NewListResponse builds a [ListResponse] that never serialises a null array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Length: len(items)}
}
