package service

import (
	"context"

	"github.com/MKhiriev/health-mate/models"
)

// AuthService manages password credentials and session tokens.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	// SetPassword adds a password to an account that has none. It succeeds
	// at most once per account.
	SetPassword(ctx context.Context, req models.SetPasswordRequest) error

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// ResolveSession parses tokenString and checks that its user still
	// exists. Every failure is reported as ErrUnauthenticated.
	ResolveSession(ctx context.Context, tokenString string) (models.User, error)
}

// FederatedAuthService signs users in through an external identity provider.
type FederatedAuthService interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (models.User, models.Token, error)
}

// ReadAuthorizer decides whether viewerID may read ownerID's data of the
// given category.
type ReadAuthorizer interface {
	AuthorizeRead(ctx context.Context, viewerID, ownerID int64, category models.Category) error
}

// ShareService manages access grants between users.
type ShareService interface {
	ReadAuthorizer

	// Grant creates or updates the grant from ownerID to the user with
	// viewerEmail. Nil permissions expose every category.
	Grant(ctx context.Context, ownerID int64, viewerEmail string, permissions *models.Permissions) (models.AccessGrant, error)
	Revoke(ctx context.Context, ownerID, viewerID int64) error
	ListGrantedToMe(ctx context.Context, viewerID int64) ([]models.GrantSummary, error)
	ListGrantedByMe(ctx context.Context, ownerID int64) ([]models.GrantSummary, error)
	Search(ctx context.Context, callerID int64, query string) ([]models.UserSummary, error)
}

type VitalService interface {
	Record(ctx context.Context, userID int64, vital models.Vital) (models.Vital, error)
	List(ctx context.Context, userID int64) ([]models.Vital, error)
	ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.Vital, error)
}

type FileService interface {
	Upload(ctx context.Context, userID int64, file models.UploadedFile) (models.FileWithInsight, error)
	List(ctx context.Context, userID int64) ([]models.FileWithInsight, error)
	Get(ctx context.Context, userID, fileID int64) (models.FileWithInsight, error)
	Delete(ctx context.Context, userID, fileID int64) error
	ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.FileWithInsight, error)
}

type ChatService interface {
	Create(ctx context.Context, userID int64, req models.CreateChatRequest) (models.Chat, error)
	List(ctx context.Context, userID int64) ([]models.Chat, error)
	Get(ctx context.Context, userID, chatID int64) (models.Chat, error)
	SendMessage(ctx context.Context, userID, chatID int64, message string) (models.Chat, error)
	Rename(ctx context.Context, userID, chatID int64, title string) (models.Chat, error)
	Delete(ctx context.Context, userID, chatID int64) error
	ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.Chat, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the server's dependencies are reachable.
type HealthService interface {
	Check(ctx context.Context) error
}
