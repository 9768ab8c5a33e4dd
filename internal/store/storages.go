package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository    UserRepository
	GrantRepository   GrantRepository
	VitalRepository   VitalRepository
	FileRepository    FileRepository
	InsightRepository InsightRepository
	ChatRepository    ChatRepository

	HealthChecker HealthChecker

	db *DB
}

// NewStorages connects to PostgreSQL, applies migrations, and builds all
// repositories on the shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return newStoragesFromDB(db, log), nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		GrantRepository:   NewGrantRepository(db, log),
		VitalRepository:   NewVitalRepository(db, log),
		FileRepository:    NewFileRepository(db, log),
		InsightRepository: NewInsightRepository(db, log),
		ChatRepository:    NewChatRepository(db, log),
		HealthChecker:     db,
		db:                db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
