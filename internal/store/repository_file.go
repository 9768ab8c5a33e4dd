package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
)

type fileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFileRepository constructs a [FileRepository] over the "files" table.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *fileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createFile,
		file.UserID,
		file.FileName,
		file.ContentType,
		file.SizeBytes,
		file.StorageKey,
		file.URL,
		file.ExtractedText,
	)
	saved, err := scanFile(row)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Int64("user_id", file.UserID).Msg("error saving file")
		return models.File{}, r.db.wrap(ErrExecutingStatement, err)
	}

	return saved, nil
}

func (r *fileRepository) ListFiles(ctx context.Context, userID int64) ([]models.File, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listFiles, userID)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Int64("user_id", userID).Msg("failed to list files")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.File, 0)
	for rows.Next() {
		f, scanErr := scanFile(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		files = append(files, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// FindFile returns the file only if it belongs to userID, otherwise
// [ErrFileNotFound].
func (r *fileRepository) FindFile(ctx context.Context, userID, fileID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	f, err := scanFile(r.db.QueryRowContext(ctx, findFile, userID, fileID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.File{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.FindFile").Int64("file_id", fileID).Msg("error finding file")
		return models.File{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return f, nil
}

// DeleteFile removes the file row; its insights go with it (ON DELETE
// CASCADE).
func (r *fileRepository) DeleteFile(ctx context.Context, userID, fileID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteFile, userID, fileID)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Int64("file_id", fileID).Msg("error deleting file")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrap(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrFileNotFound
	}

	return nil
}

func scanFile(row rowScanner) (models.File, error) {
	var f models.File
	err := row.Scan(
		&f.FileID,
		&f.UserID,
		&f.FileName,
		&f.ContentType,
		&f.SizeBytes,
		&f.StorageKey,
		&f.URL,
		&f.ExtractedText,
		&f.UploadedAt,
	)
	return f, err
}
