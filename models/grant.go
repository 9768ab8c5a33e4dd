// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Category names a class of shareable owner data. Every read through the
// shared-access gateway is checked against one category.
type Category string

const (
	CategoryVitals Category = "vitals"
	CategoryPDFs   Category = "pdfs"
	CategoryChats  Category = "chats"
)

// Permissions is the per-category sub-object of an access grant.
// It is persisted as JSONB.
type Permissions struct {
	Vitals bool `json:"vitals"`
	PDFs   bool `json:"pdfs"`
	Chats  bool `json:"chats"`
}

// DefaultPermissions returns a grant that exposes every category.
func DefaultPermissions() Permissions {
	return Permissions{Vitals: true, PDFs: true, Chats: true}
}

// Allows reports whether the permissions expose the given category.
// Unknown categories are never allowed.
func (p Permissions) Allows(category Category) bool {
	switch category {
	case CategoryVitals:
		return p.Vitals
	case CategoryPDFs:
		return p.PDFs
	case CategoryChats:
		return p.Chats
	default:
		return false
	}
}

// Value implements [driver.Valuer].
func (p Permissions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements [sql.Scanner] for JSONB columns.
func (p *Permissions) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Permissions{}
		return nil
	default:
		return errors.New("unsupported type for permissions")
	}
}

// AccessGrant is a directed (owner -> viewer) read permission edge.
// At most one grant exists per ordered pair and owner never equals viewer.
type AccessGrant struct {
	GrantID     int64       `json:"id"`
	OwnerID     int64       `json:"owner_id"`
	ViewerID    int64       `json:"viewer_id"`
	Permissions Permissions `json:"permissions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the AccessGrant model.
func (g AccessGrant) TableName() string {
	return "access_grants"
}

// GrantSummary describes the other side of a grant: the owner for
// "shared with me" lists and the viewer for "shared by me" lists.
type GrantSummary struct {
	User        UserSummary `json:"user"`
	Permissions Permissions `json:"permissions"`
	GrantedAt   time.Time   `json:"granted_at"`
}
