package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetPasswordRequest is the body of POST /auth/set-password.
type SetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GrantRequest is the body of POST /share/grant. Omitted permissions
// default to all categories.
type GrantRequest struct {
	Email       string       `json:"email"`
	Permissions *Permissions `json:"permissions,omitempty"`
}

// CreateChatRequest is the body of POST /chats.
type CreateChatRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	FileID  *int64 `json:"file_id,omitempty"`
}

// SendMessageRequest is the body of POST /chats/{chatID}/messages.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// RenameChatRequest is the body of PUT /chats/{chatID}.
type RenameChatRequest struct {
	Title string `json:"title"`
}
