// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the external collaborators of the
// health-mate server: object storage for uploaded documents, the text
// extraction service, the AI completion endpoint, and the Google identity
// provider.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of which
// collaborator failed.
package adapter

import (
	"context"

	"github.com/MKhiriev/health-mate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ObjectStorage keeps the raw bytes of uploaded documents.
type ObjectStorage interface {
	// Upload stores body under key and returns the durable retrieval URL.
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)

	// Delete removes the object stored under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error
}

// TextExtractor turns a PDF document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}

// Summarizer asks the AI model to continue a conversation and returns the
// assistant reply verbatim.
type Summarizer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// IdentityProvider performs the OAuth 2.0 authorization-code handshake with
// an external identity provider.
type IdentityProvider interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the user's verified profile.
	Exchange(ctx context.Context, code string) (models.ExternalProfile, error)
}
