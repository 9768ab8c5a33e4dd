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

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and search against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with server-assigned
// fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Name, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.wrap(ErrExecutingStatement, err)
	}

	return created, nil
}

// UpsertFederatedUser returns the account registered under profile.Email,
// creating a password-less one if none exists. The single
// INSERT ... ON CONFLICT statement keeps concurrent first logins from
// producing duplicates.
func (r *userRepository) UpsertFederatedUser(ctx context.Context, profile models.ExternalProfile) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertFederatedUser, profile.Email, profile.Name)
	user, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertFederatedUser").Str("email", profile.Email).Msg("error upserting federated user")
		return models.User{}, r.db.wrap(ErrExecutingStatement, err)
	}

	return user, nil
}

// FindUserByEmail retrieves the user whose email matches exactly.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

// FindUserByID retrieves the user with the given id.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Any("arg", arg).Msg("error finding user")
		return models.User{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return user, nil
}

// SetPasswordHash stores hash for a password-less account. The UPDATE only
// matches rows whose password_hash is NULL, so of two racing calls only one
// succeeds and the other gets [ErrPasswordAlreadySet].
func (r *userRepository) SetPasswordHash(ctx context.Context, userID int64, hash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setPasswordHash, userID, hash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetPasswordHash").Int64("user_id", userID).Msg("error setting password hash")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrPasswordAlreadySet
	}

	return nil
}

// SearchUsers returns up to limit users whose name or email contains query,
// ignoring case, excluding excludeID.
func (r *userRepository) SearchUsers(ctx context.Context, query string, excludeID int64, limit uint64) ([]models.UserSummary, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSearchUsersQuery(query, excludeID, limit)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SearchUsers").Msg("failed to build query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SearchUsers").Str("query", query).Msg("failed to search users")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.UserSummary, 0, limit)
	for rows.Next() {
		var u models.UserSummary
		if err = rows.Scan(&u.UserID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
