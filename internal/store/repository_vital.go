package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
)

type vitalRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVitalRepository constructs a [VitalRepository] over the "vitals" table.
func NewVitalRepository(db *DB, logger *logger.Logger) VitalRepository {
	logger.Debug().Msg("creating vital repository")
	return &vitalRepository{
		db:     db,
		logger: logger,
	}
}

func (r *vitalRepository) CreateVital(ctx context.Context, vital models.Vital) (models.Vital, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertVitalQuery(vital)
	if err != nil {
		log.Err(err).Str("func", "*vitalRepository.CreateVital").Msg("failed to build query")
		return models.Vital{}, err
	}

	saved, err := scanVital(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*vitalRepository.CreateVital").Int64("user_id", vital.UserID).Msg("error saving vital")
		return models.Vital{}, r.db.wrap(ErrVitalNotSaved, err)
	}

	return saved, nil
}

func (r *vitalRepository) ListVitals(ctx context.Context, userID int64) ([]models.Vital, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listVitals, userID)
	if err != nil {
		log.Err(err).Str("func", "*vitalRepository.ListVitals").Int64("user_id", userID).Msg("failed to list vitals")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	vitals := make([]models.Vital, 0)
	for rows.Next() {
		v, scanErr := scanVital(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*vitalRepository.ListVitals").Int64("user_id", userID).Msg("failed to scan vital row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		vitals = append(vitals, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return vitals, nil
}

func scanVital(row rowScanner) (models.Vital, error) {
	var v models.Vital
	err := row.Scan(
		&v.VitalID,
		&v.UserID,
		&v.Systolic,
		&v.Diastolic,
		&v.HeartRate,
		&v.BloodSugar,
		&v.Temperature,
		&v.Weight,
		&v.OxygenSaturation,
		&v.Notes,
		&v.RecordedAt,
		&v.CreatedAt,
	)
	return v, err
}
