package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fileRowColumns = []string{
		"file_id", "user_id", "file_name", "content_type", "size_bytes",
		"storage_key", "url", "extracted_text", "uploaded_at",
	}
	insightRowColumns = []string{"insight_id", "file_id", "user_id", "summary", "created_at"}
)

func newTestFileRepos(t *testing.T) (*fileRepository, *insightRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &fileRepository{db: db, logger: logger.Nop()},
		&insightRepository{db: db, logger: logger.Nop()},
		mock
}

func TestCreateFile_Success(t *testing.T) {
	files, _, mock := newTestFileRepos(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(int64(3), "lab.pdf", models.ContentTypePDF, int64(42), "users/3/key", "http://s3/users/3/key", "text").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(9, 3, "lab.pdf", models.ContentTypePDF, 42, "users/3/key", "http://s3/users/3/key", "text", now))

	saved, err := files.CreateFile(context.Background(), models.File{
		UserID:        3,
		FileName:      "lab.pdf",
		ContentType:   models.ContentTypePDF,
		SizeBytes:     42,
		StorageKey:    "users/3/key",
		URL:           "http://s3/users/3/key",
		ExtractedText: "text",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), saved.FileID)
	assert.True(t, saved.IsPDF())
}

func TestFindFile_OtherOwnerIsNotFound(t *testing.T) {
	files, _, mock := newTestFileRepos(t)

	mock.ExpectQuery("SELECT (.+) FROM files WHERE user_id = \\$1 AND file_id = \\$2").
		WithArgs(int64(5), int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := files.FindFile(context.Background(), 5, 9)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDeleteFile(t *testing.T) {
	files, _, mock := newTestFileRepos(t)

	mock.ExpectExec("DELETE FROM files").
		WithArgs(int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM files").
		WithArgs(int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, files.DeleteFile(context.Background(), 3, 9))
	assert.ErrorIs(t, files.DeleteFile(context.Background(), 3, 9), ErrFileNotFound)
}

func TestListFiles(t *testing.T) {
	files, _, mock := newTestFileRepos(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM files WHERE user_id = \\$1 ORDER BY uploaded_at DESC").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(fileRowColumns).
			AddRow(9, 3, "lab.pdf", models.ContentTypePDF, 42, "k1", "u1", "", now).
			AddRow(8, 3, "xray.png", "image/png", 1024, "k2", "u2", "", now.Add(-time.Minute)))

	list, err := files.ListFiles(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[1].IsPDF())
}

func TestCreateInsight_MissingFile(t *testing.T) {
	_, insights, mock := newTestFileRepos(t)

	mock.ExpectQuery("INSERT INTO insights").
		WithArgs(int64(9), int64(3), "summary").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := insights.CreateInsight(context.Background(), models.Insight{FileID: 9, UserID: 3, Summary: "summary"})
	assert.ErrorIs(t, err, ErrReferencedRowMissing)
}

func TestListLatestInsights_DistinctPerFile(t *testing.T) {
	_, insights, mock := newTestFileRepos(t)
	now := time.Now()

	mock.ExpectQuery("SELECT DISTINCT ON \\(file_id\\)").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(insightRowColumns).
			AddRow(20, 8, 3, "older file summary", now).
			AddRow(21, 9, 3, "newer file summary", now))

	list, err := insights.ListLatestInsights(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(9), list[1].FileID)
}

func TestFindLatestInsight_None(t *testing.T) {
	_, insights, mock := newTestFileRepos(t)

	mock.ExpectQuery("FROM insights WHERE user_id = \\$1 AND file_id = \\$2").
		WithArgs(int64(3), int64(9)).
		WillReturnRows(sqlmock.NewRows(insightRowColumns))

	_, err := insights.FindLatestInsight(context.Background(), 3, 9)
	assert.ErrorIs(t, err, ErrInsightNotFound)
}
