// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and as the owner
// of every health record in the system.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the globally unique login identifier. It is also the join key
	// between password and federated identities.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Nil means the account was created via federated login and has no
	// local credential yet. Never exposed via JSON.
	PasswordHash *string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the account.
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether the user has a local credential.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{
		UserID: u.UserID,
		Email:  u.Email,
		Name:   u.Name,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserSummary is the non-sensitive view of a user shown to other users
// (share lists, search results) and returned by the auth endpoints.
type UserSummary struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ExternalProfile is the identity returned by a federated identity provider
// after a successful authorization-code exchange.
type ExternalProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
