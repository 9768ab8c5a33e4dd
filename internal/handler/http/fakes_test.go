package http

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/service"
	"github.com/MKhiriev/health-mate/internal/validators"
	"github.com/MKhiriev/health-mate/models"
)

const (
	testCookieName  = "token"
	testFrontendURL = "http://front.test/app"
	testOrigin      = "http://front.test"
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{TokenDuration: time.Hour},
		Server: config.Server{
			HTTPAddress:    ":0",
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{testOrigin},
			FrontendURL:    testFrontendURL,
			CookieName:     testCookieName,
			CookieSameSite: "lax",
			MaxUploadSize:  1024,
		},
	}
}

// sessionToken is the cookie value the fake auth service resolves to userID.
func sessionToken(userID int64) string {
	return fmt.Sprintf("session-%d", userID)
}

// fakeAuthService resolves tokens produced by sessionToken and delegates
// everything else to optional hooks.
type fakeAuthService struct {
	users map[int64]models.User

	register    func(models.RegisterRequest) (models.User, models.Token, error)
	login       func(models.LoginRequest) (models.User, models.Token, error)
	setPassword func(models.SetPasswordRequest) error
}

func (f *fakeAuthService) Register(_ context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	return f.register(req)
}

func (f *fakeAuthService) Login(_ context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	return f.login(req)
}

func (f *fakeAuthService) SetPassword(_ context.Context, req models.SetPasswordRequest) error {
	return f.setPassword(req)
}

func (f *fakeAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{UserID: user.UserID, SignedString: sessionToken(user.UserID)}, nil
}

func (f *fakeAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	var userID int64
	if _, err := fmt.Sscanf(tokenString, "session-%d", &userID); err != nil {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{UserID: userID, SignedString: tokenString}, nil
}

func (f *fakeAuthService) ResolveSession(ctx context.Context, tokenString string) (models.User, error) {
	if tokenString == "" {
		return models.User{}, service.ErrUnauthenticated
	}
	token, err := f.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", service.ErrUnauthenticated, err)
	}
	user, ok := f.users[token.UserID]
	if !ok {
		return models.User{}, service.ErrUnauthenticated
	}
	return user, nil
}

type fakeFederatedAuthService struct {
	exchange func(code string) (models.User, models.Token, error)
}

func (f *fakeFederatedAuthService) AuthURL(state string) string {
	return "https://accounts.example/o/oauth2/auth?state=" + state
}

func (f *fakeFederatedAuthService) Exchange(_ context.Context, code string) (models.User, models.Token, error) {
	return f.exchange(code)
}

// fakeShareService answers AuthorizeRead from a set of owner->viewer pairs.
type fakeShareService struct {
	grants map[[2]int64]bool

	grant  func(ownerID int64, email string, permissions *models.Permissions) (models.AccessGrant, error)
	revoke func(ownerID, viewerID int64) error
	search func(callerID int64, query string) ([]models.UserSummary, error)
}

func (f *fakeShareService) AuthorizeRead(_ context.Context, viewerID, ownerID int64, _ models.Category) error {
	if viewerID == ownerID || f.grants[[2]int64{ownerID, viewerID}] {
		return nil
	}
	return service.ErrAccessDenied
}

func (f *fakeShareService) Grant(_ context.Context, ownerID int64, viewerEmail string, permissions *models.Permissions) (models.AccessGrant, error) {
	return f.grant(ownerID, viewerEmail, permissions)
}

func (f *fakeShareService) Revoke(_ context.Context, ownerID, viewerID int64) error {
	return f.revoke(ownerID, viewerID)
}

func (f *fakeShareService) ListGrantedToMe(context.Context, int64) ([]models.GrantSummary, error) {
	return nil, nil
}

func (f *fakeShareService) ListGrantedByMe(context.Context, int64) ([]models.GrantSummary, error) {
	return nil, nil
}

func (f *fakeShareService) Search(_ context.Context, callerID int64, query string) ([]models.UserSummary, error) {
	return f.search(callerID, query)
}

// fakeVitalService keeps vitals per user and checks shared reads through
// the share fake.
type fakeVitalService struct {
	share  *fakeShareService
	vitals map[int64][]models.Vital
}

func (f *fakeVitalService) Record(_ context.Context, userID int64, vital models.Vital) (models.Vital, error) {
	vital.VitalID = int64(len(f.vitals[userID]) + 1)
	vital.UserID = userID
	f.vitals[userID] = append(f.vitals[userID], vital)
	return vital, nil
}

func (f *fakeVitalService) List(_ context.Context, userID int64) ([]models.Vital, error) {
	return f.vitals[userID], nil
}

func (f *fakeVitalService) ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.Vital, error) {
	if err := f.share.AuthorizeRead(ctx, viewerID, ownerID, models.CategoryVitals); err != nil {
		return nil, err
	}
	return f.vitals[ownerID], nil
}

type fakeFileService struct {
	uploaded []models.UploadedFile
	err      error
}

func (f *fakeFileService) Upload(_ context.Context, userID int64, file models.UploadedFile) (models.FileWithInsight, error) {
	if f.err != nil {
		return models.FileWithInsight{}, f.err
	}
	f.uploaded = append(f.uploaded, file)
	return models.FileWithInsight{File: models.File{
		FileID:      int64(len(f.uploaded)),
		UserID:      userID,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		SizeBytes:   int64(len(file.Body)),
	}}, nil
}

func (f *fakeFileService) List(context.Context, int64) ([]models.FileWithInsight, error) {
	return nil, f.err
}

func (f *fakeFileService) Get(_ context.Context, _ int64, fileID int64) (models.FileWithInsight, error) {
	if f.err != nil {
		return models.FileWithInsight{}, f.err
	}
	return models.FileWithInsight{File: models.File{FileID: fileID}}, nil
}

func (f *fakeFileService) Delete(context.Context, int64, int64) error {
	return f.err
}

func (f *fakeFileService) ListShared(context.Context, int64, int64) ([]models.FileWithInsight, error) {
	return nil, f.err
}

type fakeChatService struct {
	chats map[int64]models.Chat
	err   error
}

func (f *fakeChatService) Create(_ context.Context, userID int64, req models.CreateChatRequest) (models.Chat, error) {
	if f.err != nil {
		return models.Chat{}, f.err
	}
	chat := models.Chat{
		ChatID: int64(len(f.chats) + 1),
		UserID: userID,
		Title:  req.Title,
		Messages: models.Messages{
			{Role: models.RoleUser, Content: req.Message},
			{Role: models.RoleAssistant, Content: "reply"},
		},
	}
	f.chats[chat.ChatID] = chat
	return chat, nil
}

func (f *fakeChatService) List(context.Context, int64) ([]models.Chat, error) {
	return nil, f.err
}

func (f *fakeChatService) Get(_ context.Context, userID, chatID int64) (models.Chat, error) {
	chat, ok := f.chats[chatID]
	if !ok || chat.UserID != userID {
		return models.Chat{}, service.ErrChatNotFound
	}
	return chat, nil
}

func (f *fakeChatService) SendMessage(ctx context.Context, userID, chatID int64, message string) (models.Chat, error) {
	if f.err != nil {
		return models.Chat{}, f.err
	}
	chat, err := f.Get(ctx, userID, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	chat.Messages = append(chat.Messages, models.ChatMessage{Role: models.RoleUser, Content: message})
	f.chats[chatID] = chat
	return chat, nil
}

func (f *fakeChatService) Rename(ctx context.Context, userID, chatID int64, title string) (models.Chat, error) {
	chat, err := f.Get(ctx, userID, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	chat.Title = strings.TrimSpace(title)
	f.chats[chatID] = chat
	return chat, nil
}

func (f *fakeChatService) Delete(ctx context.Context, userID, chatID int64) error {
	if _, err := f.Get(ctx, userID, chatID); err != nil {
		return err
	}
	delete(f.chats, chatID)
	return nil
}

func (f *fakeChatService) ListShared(context.Context, int64, int64) ([]models.Chat, error) {
	return nil, f.err
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

type fakeHealthService struct {
	err error
}

func (f *fakeHealthService) Check(context.Context) error {
	return f.err
}

// testEnv bundles a handler with the fakes behind it.
type testEnv struct {
	handler *Handler

	auth      *fakeAuthService
	federated *fakeFederatedAuthService
	share     *fakeShareService
	vitals    *fakeVitalService
	files     *fakeFileService
	chats     *fakeChatService
	health    *fakeHealthService
}

// newTestEnv builds a handler whose fake auth service knows alice (1) and
// bob (2).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	share := &fakeShareService{grants: map[[2]int64]bool{}}
	env := &testEnv{
		auth: &fakeAuthService{users: map[int64]models.User{
			1: {UserID: 1, Email: "alice@example.com", Name: "Alice"},
			2: {UserID: 2, Email: "bob@example.com", Name: "Bob"},
		}},
		federated: &fakeFederatedAuthService{},
		share:     share,
		vitals:    &fakeVitalService{share: share, vitals: map[int64][]models.Vital{}},
		files:     &fakeFileService{},
		chats:     &fakeChatService{chats: map[int64]models.Chat{}},
		health:    &fakeHealthService{},
	}

	services := &service.Services{
		AuthService:          env.auth,
		FederatedAuthService: env.federated,
		ShareService:         env.share,
		VitalService:         env.vitals,
		FileService:          env.files,
		ChatService:          env.chats,
		AppInfoService:       &mockAppInfoService{version: "test-version"},
		HealthService:        env.health,
	}

	env.handler = NewHandler(services, validators.NewRequestValidator(), testConfig(), logger.Nop())
	return env
}
