// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Transport-level errors. They are reported through the same status and
// code tables as the service errors.
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidOAuthState is returned by the Google callback when the state
	// cookie is missing or the state query parameter does not match it.
	ErrInvalidOAuthState = errors.New("invalid OAuth state")

	// ErrMissingFile is returned when a multipart upload carries no "file" part.
	ErrMissingFile = errors.New("multipart form field `file` is required")

	// ErrRouteNotFound is returned for unknown paths and for known paths
	// requested with an unsupported method.
	ErrRouteNotFound = errors.New("route not found")

	// ErrUploadTooLarge is returned when the upload exceeds the configured limit.
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)
