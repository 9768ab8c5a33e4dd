package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/models"
)

// memoryStore is an in-memory implementation of every repository the
// services use. It enforces the same uniqueness and ownership rules as the
// PostgreSQL schema.
type memoryStore struct {
	mu sync.Mutex

	nextID   int64
	users    map[int64]models.User
	grants   map[[2]int64]models.AccessGrant
	vitals   []models.Vital
	files    map[int64]models.File
	insights []models.Insight
	chats    map[int64]models.Chat

	searchCalls int
	failWith    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[int64]models.User),
		grants: make(map[[2]int64]models.AccessGrant),
		files:  make(map[int64]models.File),
		chats:  make(map[int64]models.Chat),
	}
}

func (m *memoryStore) id() int64 {
	m.nextID++
	return m.nextID
}

// ── UserRepository ───────────────────────────────────────────────────────────

func (m *memoryStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.User{}, m.failWith
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	user.UserID = m.id()
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryStore) UpsertFederatedUser(_ context.Context, profile models.ExternalProfile) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == profile.Email {
			return u, nil
		}
	}
	user := models.User{UserID: m.id(), Email: profile.Email, Name: profile.Name, CreatedAt: time.Now()}
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.User{}, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memoryStore) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *memoryStore) SetPasswordHash(_ context.Context, userID int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok || u.PasswordHash != nil {
		return store.ErrPasswordAlreadySet
	}
	u.PasswordHash = &hash
	m.users[userID] = u
	return nil
}

func (m *memoryStore) SearchUsers(_ context.Context, query string, excludeID int64, limit uint64) ([]models.UserSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.searchCalls++
	q := strings.ToLower(query)
	result := make([]models.UserSummary, 0)
	for _, id := range m.sortedUserIDs() {
		u := m.users[id]
		if u.UserID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			result = append(result, u.Summary())
		}
		if uint64(len(result)) == limit {
			break
		}
	}
	return result, nil
}

func (m *memoryStore) sortedUserIDs() []int64 {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── GrantRepository ──────────────────────────────────────────────────────────

func (m *memoryStore) UpsertGrant(_ context.Context, grant models.AccessGrant) (models.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if grant.OwnerID == grant.ViewerID {
		return models.AccessGrant{}, store.ErrSelfGrant
	}
	key := [2]int64{grant.OwnerID, grant.ViewerID}
	if existing, ok := m.grants[key]; ok {
		existing.Permissions = grant.Permissions
		m.grants[key] = existing
		return existing, nil
	}
	grant.GrantID = m.id()
	grant.CreatedAt = time.Now()
	m.grants[key] = grant
	return grant, nil
}

func (m *memoryStore) DeleteGrant(_ context.Context, ownerID, viewerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := [2]int64{ownerID, viewerID}
	if _, ok := m.grants[key]; !ok {
		return store.ErrGrantNotFound
	}
	delete(m.grants, key)
	return nil
}

func (m *memoryStore) FindGrant(_ context.Context, ownerID, viewerID int64) (models.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.AccessGrant{}, m.failWith
	}
	if g, ok := m.grants[[2]int64{ownerID, viewerID}]; ok {
		return g, nil
	}
	return models.AccessGrant{}, store.ErrGrantNotFound
}

func (m *memoryStore) ListGrantsByViewer(_ context.Context, viewerID int64) ([]models.GrantSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.GrantSummary, 0)
	for key, g := range m.grants {
		if key[1] == viewerID {
			result = append(result, models.GrantSummary{User: m.users[key[0]].Summary(), Permissions: g.Permissions})
		}
	}
	return result, nil
}

func (m *memoryStore) ListGrantsByOwner(_ context.Context, ownerID int64) ([]models.GrantSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.GrantSummary, 0)
	for key, g := range m.grants {
		if key[0] == ownerID {
			result = append(result, models.GrantSummary{User: m.users[key[1]].Summary(), Permissions: g.Permissions})
		}
	}
	return result, nil
}

// ── VitalRepository ──────────────────────────────────────────────────────────

func (m *memoryStore) CreateVital(_ context.Context, vital models.Vital) (models.Vital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vital.VitalID = m.id()
	vital.CreatedAt = time.Now()
	m.vitals = append(m.vitals, vital)
	return vital, nil
}

func (m *memoryStore) ListVitals(_ context.Context, userID int64) ([]models.Vital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Vital, 0)
	for i := len(m.vitals) - 1; i >= 0; i-- {
		if m.vitals[i].UserID == userID {
			result = append(result, m.vitals[i])
		}
	}
	return result, nil
}

// ── FileRepository / InsightRepository ───────────────────────────────────────

func (m *memoryStore) CreateFile(_ context.Context, file models.File) (models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return models.File{}, m.failWith
	}
	file.FileID = m.id()
	file.UploadedAt = time.Now()
	m.files[file.FileID] = file
	return file, nil
}

func (m *memoryStore) ListFiles(_ context.Context, userID int64) ([]models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.File, 0)
	for _, f := range m.files {
		if f.UserID == userID {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FileID > result[j].FileID })
	return result, nil
}

func (m *memoryStore) FindFile(_ context.Context, userID, fileID int64) (models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.files[fileID]; ok && f.UserID == userID {
		return f, nil
	}
	return models.File{}, store.ErrFileNotFound
}

func (m *memoryStore) DeleteFile(_ context.Context, userID, fileID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.files[fileID]; !ok || f.UserID != userID {
		return store.ErrFileNotFound
	}
	delete(m.files, fileID)

	kept := m.insights[:0]
	for _, i := range m.insights {
		if i.FileID != fileID {
			kept = append(kept, i)
		}
	}
	m.insights = kept
	return nil
}

func (m *memoryStore) CreateInsight(_ context.Context, insight models.Insight) (models.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[insight.FileID]; !ok {
		return models.Insight{}, store.ErrReferencedRowMissing
	}
	insight.InsightID = m.id()
	insight.CreatedAt = time.Now()
	m.insights = append(m.insights, insight)
	return insight, nil
}

func (m *memoryStore) ListLatestInsights(_ context.Context, userID int64) ([]models.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest := make(map[int64]models.Insight)
	for _, i := range m.insights {
		if i.UserID == userID {
			latest[i.FileID] = i
		}
	}
	result := make([]models.Insight, 0, len(latest))
	for _, i := range latest {
		result = append(result, i)
	}
	return result, nil
}

func (m *memoryStore) FindLatestInsight(_ context.Context, userID, fileID int64) (models.Insight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.insights) - 1; i >= 0; i-- {
		if m.insights[i].UserID == userID && m.insights[i].FileID == fileID {
			return m.insights[i], nil
		}
	}
	return models.Insight{}, store.ErrInsightNotFound
}

// ── ChatRepository ───────────────────────────────────────────────────────────

func (m *memoryStore) CreateChat(_ context.Context, chat models.Chat) (models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat.ChatID = m.id()
	chat.CreatedAt = time.Now()
	chat.UpdatedAt = chat.CreatedAt
	m.chats[chat.ChatID] = chat
	return chat, nil
}

func (m *memoryStore) ListChats(_ context.Context, userID int64) ([]models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Chat, 0)
	for _, c := range m.chats {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *memoryStore) FindChat(_ context.Context, userID, chatID int64) (models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.chats[chatID]; ok && c.UserID == userID {
		return c, nil
	}
	return models.Chat{}, store.ErrChatNotFound
}

func (m *memoryStore) UpdateMessages(_ context.Context, userID, chatID int64, messages models.Messages) (models.Chat, error) {
	return m.updateChat(userID, chatID, func(c *models.Chat) { c.Messages = messages })
}

func (m *memoryStore) RenameChat(_ context.Context, userID, chatID int64, title string) (models.Chat, error) {
	return m.updateChat(userID, chatID, func(c *models.Chat) { c.Title = title })
}

func (m *memoryStore) updateChat(userID, chatID int64, update func(*models.Chat)) (models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.chats[chatID]
	if !ok || c.UserID != userID {
		return models.Chat{}, store.ErrChatNotFound
	}
	update(&c)
	c.UpdatedAt = time.Now()
	m.chats[chatID] = c
	return c, nil
}

func (m *memoryStore) DeleteChat(_ context.Context, userID, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.chats[chatID]; !ok || c.UserID != userID {
		return store.ErrChatNotFound
	}
	delete(m.chats, chatID)
	return nil
}

// ── HealthChecker ────────────────────────────────────────────────────────────

func (m *memoryStore) Ping(context.Context) error {
	return m.failWith
}
