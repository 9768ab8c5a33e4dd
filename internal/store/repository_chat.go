package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
	"github.com/jackc/pgerrcode"
)

type chatRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChatRepository constructs a [ChatRepository] over the "chats" table.
// Messages are kept as a JSONB array on the chat row.
func NewChatRepository(db *DB, logger *logger.Logger) ChatRepository {
	logger.Debug().Msg("creating chat repository")
	return &chatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *chatRepository) CreateChat(ctx context.Context, chat models.Chat) (models.Chat, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createChat, chat.UserID, chat.Title, chat.FileID, chat.Messages)
	saved, err := scanChat(row)
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.CreateChat").Int64("user_id", chat.UserID).Msg("error saving chat")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Chat{}, ErrReferencedRowMissing
		}
		return models.Chat{}, r.db.wrap(ErrExecutingStatement, err)
	}

	return saved, nil
}

func (r *chatRepository) ListChats(ctx context.Context, userID int64) ([]models.Chat, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listChats, userID)
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.ListChats").Int64("user_id", userID).Msg("failed to list chats")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	chats := make([]models.Chat, 0)
	for rows.Next() {
		c, scanErr := scanChat(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		chats = append(chats, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return chats, nil
}

func (r *chatRepository) FindChat(ctx context.Context, userID, chatID int64) (models.Chat, error) {
	return r.queryOne(ctx, "*chatRepository.FindChat", findChat, userID, chatID)
}

// UpdateMessages replaces the stored conversation with messages.
func (r *chatRepository) UpdateMessages(ctx context.Context, userID, chatID int64, messages models.Messages) (models.Chat, error) {
	return r.queryOne(ctx, "*chatRepository.UpdateMessages", updateChatMessages, userID, chatID, messages)
}

func (r *chatRepository) RenameChat(ctx context.Context, userID, chatID int64, title string) (models.Chat, error) {
	return r.queryOne(ctx, "*chatRepository.RenameChat", renameChat, userID, chatID, title)
}

func (r *chatRepository) DeleteChat(ctx context.Context, userID, chatID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteChat, userID, chatID)
	if err != nil {
		log.Err(err).Str("func", "*chatRepository.DeleteChat").Int64("chat_id", chatID).Msg("error deleting chat")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// queryOne runs a statement returning a single chat row scoped to userID.
func (r *chatRepository) queryOne(ctx context.Context, funcName, query string, args ...any) (models.Chat, error) {
	log := logger.FromContext(ctx)

	c, err := scanChat(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("chat query failed")
		return models.Chat{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return c, nil
}

func scanChat(row rowScanner) (models.Chat, error) {
	var c models.Chat
	err := row.Scan(&c.ChatID, &c.UserID, &c.Title, &c.FileID, &c.Messages, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
