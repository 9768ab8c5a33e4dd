package store

import (
	"context"

	"github.com/MKhiriev/health-mate/models"
)

// UserRepository persists user identities.
type UserRepository interface {
	// CreateUser inserts a new user. A duplicate email yields
	// ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// UpsertFederatedUser returns the user with email, creating a
	// password-less account atomically when none exists.
	UpsertFederatedUser(ctx context.Context, profile models.ExternalProfile) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// SetPasswordHash stores hash only if the account has none yet,
	// otherwise it returns ErrPasswordAlreadySet.
	SetPasswordHash(ctx context.Context, userID int64, hash string) error
	// SearchUsers matches query against name or email case-insensitively,
	// excluding excludeID.
	SearchUsers(ctx context.Context, query string, excludeID int64, limit uint64) ([]models.UserSummary, error)
}

// GrantRepository persists owner-to-viewer access grants.
type GrantRepository interface {
	UpsertGrant(ctx context.Context, grant models.AccessGrant) (models.AccessGrant, error)
	DeleteGrant(ctx context.Context, ownerID, viewerID int64) error
	FindGrant(ctx context.Context, ownerID, viewerID int64) (models.AccessGrant, error)
	// ListGrantsByViewer returns the owners that shared with viewerID.
	ListGrantsByViewer(ctx context.Context, viewerID int64) ([]models.GrantSummary, error)
	// ListGrantsByOwner returns the viewers ownerID shared with.
	ListGrantsByOwner(ctx context.Context, ownerID int64) ([]models.GrantSummary, error)
}

// VitalRepository persists vital sign readings.
type VitalRepository interface {
	CreateVital(ctx context.Context, vital models.Vital) (models.Vital, error)
	ListVitals(ctx context.Context, userID int64) ([]models.Vital, error)
}

// FileRepository persists uploaded document metadata.
type FileRepository interface {
	CreateFile(ctx context.Context, file models.File) (models.File, error)
	ListFiles(ctx context.Context, userID int64) ([]models.File, error)
	FindFile(ctx context.Context, userID, fileID int64) (models.File, error)
	DeleteFile(ctx context.Context, userID, fileID int64) error
}

// InsightRepository persists AI summaries of uploaded files.
type InsightRepository interface {
	CreateInsight(ctx context.Context, insight models.Insight) (models.Insight, error)
	// ListLatestInsights returns the newest insight of every file owned by
	// userID.
	ListLatestInsights(ctx context.Context, userID int64) ([]models.Insight, error)
	FindLatestInsight(ctx context.Context, userID, fileID int64) (models.Insight, error)
}

// ChatRepository persists assistant conversations.
type ChatRepository interface {
	CreateChat(ctx context.Context, chat models.Chat) (models.Chat, error)
	ListChats(ctx context.Context, userID int64) ([]models.Chat, error)
	FindChat(ctx context.Context, userID, chatID int64) (models.Chat, error)
	UpdateMessages(ctx context.Context, userID, chatID int64, messages models.Messages) (models.Chat, error)
	RenameChat(ctx context.Context, userID, chatID int64, title string) (models.Chat, error)
	DeleteChat(ctx context.Context, userID, chatID int64) error
}

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
