// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role tags a chat message with its author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a conversation with the AI assistant.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Messages is an ordered conversation persisted as a JSONB array.
type Messages []ChatMessage

// Value implements [driver.Valuer].
func (m Messages) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

// Scan implements [sql.Scanner] for JSONB columns.
func (m *Messages) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = Messages{}
		return nil
	default:
		return errors.New("unsupported type for chat messages")
	}
}

// Chat is a conversation owned by one user, optionally anchored to an
// uploaded file whose extracted text is given to the assistant.
type Chat struct {
	ChatID    int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	FileID    *int64    `json:"file_id,omitempty"`
	Messages  Messages  `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Chat model.
func (c Chat) TableName() string {
	return "chats"
}
