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

// grantRepository is the PostgreSQL-backed implementation of
// [GrantRepository] over the "access_grants" table.
type grantRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGrantRepository constructs a [GrantRepository].
func NewGrantRepository(db *DB, logger *logger.Logger) GrantRepository {
	logger.Debug().Msg("creating grant repository")
	return &grantRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertGrant creates the (owner, viewer) edge or replaces the permissions of
// an existing one. Repeating the call never creates a second edge.
//
// Error handling:
//   - check_violation (owner == viewer) → [ErrSelfGrant].
//   - foreign_key_violation (unknown user) → [ErrNoUserWasFound].
func (r *grantRepository) UpsertGrant(ctx context.Context, grant models.AccessGrant) (models.AccessGrant, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, upsertGrant, grant.OwnerID, grant.ViewerID, grant.Permissions)
	saved, err := scanGrant(row)
	if err != nil {
		log.Err(err).
			Str("func", "*grantRepository.UpsertGrant").
			Int64("owner_id", grant.OwnerID).
			Int64("viewer_id", grant.ViewerID).
			Msg("error upserting grant")

		switch postgresError(err) {
		case pgerrcode.CheckViolation:
			return models.AccessGrant{}, ErrSelfGrant
		case pgerrcode.ForeignKeyViolation:
			return models.AccessGrant{}, ErrNoUserWasFound
		default:
			return models.AccessGrant{}, r.db.wrap(ErrExecutingStatement, err)
		}
	}

	return saved, nil
}

// DeleteGrant removes the (owner, viewer) edge. Returns [ErrGrantNotFound]
// when no such edge exists.
func (r *grantRepository) DeleteGrant(ctx context.Context, ownerID, viewerID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteGrant, ownerID, viewerID)
	if err != nil {
		log.Err(err).
			Str("func", "*grantRepository.DeleteGrant").
			Int64("owner_id", ownerID).
			Int64("viewer_id", viewerID).
			Msg("error deleting grant")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrGrantNotFound
	}

	return nil
}

// FindGrant returns the exact (owner, viewer) edge or [ErrGrantNotFound].
// The reverse edge is never consulted.
func (r *grantRepository) FindGrant(ctx context.Context, ownerID, viewerID int64) (models.AccessGrant, error) {
	log := logger.FromContext(ctx)

	grant, err := scanGrant(r.db.QueryRowContext(ctx, findGrant, ownerID, viewerID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.AccessGrant{}, ErrGrantNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*grantRepository.FindGrant").
			Int64("owner_id", ownerID).
			Int64("viewer_id", viewerID).
			Msg("error finding grant")
		return models.AccessGrant{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return grant, nil
}

// ListGrantsByViewer returns a summary of every owner that granted access to
// viewerID, newest first.
func (r *grantRepository) ListGrantsByViewer(ctx context.Context, viewerID int64) ([]models.GrantSummary, error) {
	return r.listSummaries(ctx, "*grantRepository.ListGrantsByViewer", listGrantsByViewer, viewerID)
}

// ListGrantsByOwner returns a summary of every viewer ownerID granted access
// to, newest first.
func (r *grantRepository) ListGrantsByOwner(ctx context.Context, ownerID int64) ([]models.GrantSummary, error) {
	return r.listSummaries(ctx, "*grantRepository.ListGrantsByOwner", listGrantsByOwner, ownerID)
}

func (r *grantRepository) listSummaries(ctx context.Context, funcName, query string, userID int64) ([]models.GrantSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("failed to list grants")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.GrantSummary, 0)
	for rows.Next() {
		var s models.GrantSummary
		if err = rows.Scan(&s.User.UserID, &s.User.Email, &s.User.Name, &s.Permissions, &s.GrantedAt); err != nil {
			log.Err(err).Str("func", funcName).Int64("user_id", userID).Msg("failed to scan grant row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summaries, nil
}

func scanGrant(row rowScanner) (models.AccessGrant, error) {
	var g models.AccessGrant
	err := row.Scan(&g.GrantID, &g.OwnerID, &g.ViewerID, &g.Permissions, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}
