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

type insightRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewInsightRepository constructs an [InsightRepository] over the
// "insights" table.
func NewInsightRepository(db *DB, logger *logger.Logger) InsightRepository {
	logger.Debug().Msg("creating insight repository")
	return &insightRepository{
		db:     db,
		logger: logger,
	}
}

func (r *insightRepository) CreateInsight(ctx context.Context, insight models.Insight) (models.Insight, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createInsight, insight.FileID, insight.UserID, insight.Summary)
	saved, err := scanInsight(row)
	if err != nil {
		log.Err(err).Str("func", "*insightRepository.CreateInsight").Int64("file_id", insight.FileID).Msg("error saving insight")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Insight{}, ErrReferencedRowMissing
		}
		return models.Insight{}, r.db.wrap(ErrExecutingStatement, err)
	}

	return saved, nil
}

func (r *insightRepository) ListLatestInsights(ctx context.Context, userID int64) ([]models.Insight, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listLatestInsights, userID)
	if err != nil {
		log.Err(err).Str("func", "*insightRepository.ListLatestInsights").Int64("user_id", userID).Msg("failed to list insights")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	insights := make([]models.Insight, 0)
	for rows.Next() {
		i, scanErr := scanInsight(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		insights = append(insights, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return insights, nil
}

func (r *insightRepository) FindLatestInsight(ctx context.Context, userID, fileID int64) (models.Insight, error) {
	log := logger.FromContext(ctx)

	i, err := scanInsight(r.db.QueryRowContext(ctx, findLatestInsight, userID, fileID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Insight{}, ErrInsightNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*insightRepository.FindLatestInsight").Int64("file_id", fileID).Msg("error finding insight")
		return models.Insight{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return i, nil
}

func scanInsight(row rowScanner) (models.Insight, error) {
	var i models.Insight
	err := row.Scan(&i.InsightID, &i.FileID, &i.UserID, &i.Summary, &i.CreatedAt)
	return i, err
}
