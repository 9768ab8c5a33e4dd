package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/health-mate/internal/adapter"
	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

const summaryInstruction = `Summarise the following medical document for the patient who owns it.
Explain every result in plain language, point out values outside the usual
reference range, and suggest questions to ask a doctor. Do not diagnose.`

type fileService struct {
	fileRepository    store.FileRepository
	insightRepository store.InsightRepository

	objects    adapter.ObjectStorage
	extractor  adapter.TextExtractor
	summarizer adapter.Summarizer
	authorizer ReadAuthorizer

	keys      *utils.UUIDGenerator
	textLimit int

	logger *logger.Logger
}

// NewFileService constructs a FileService. cfg.TextLimit bounds how many
// characters of extracted text are stored and sent to the summarizer.
func NewFileService(
	fileRepository store.FileRepository,
	insightRepository store.InsightRepository,
	objects adapter.ObjectStorage,
	extractor adapter.TextExtractor,
	summarizer adapter.Summarizer,
	authorizer ReadAuthorizer,
	cfg config.Extractor,
	logger *logger.Logger,
) FileService {
	return &fileService{
		fileRepository:    fileRepository,
		insightRepository: insightRepository,
		objects:           objects,
		extractor:         extractor,
		summarizer:        summarizer,
		authorizer:        authorizer,
		keys:              utils.NewUUIDGenerator(),
		textLimit:         cfg.TextLimit,
		logger:            logger,
	}
}

// Upload stores the blob, extracts text from PDFs, writes the file row and
// then the insight row. There is no transaction across these steps; a
// failure undoes the steps already completed, newest first.
func (s *fileService) Upload(ctx context.Context, userID int64, upload models.UploadedFile) (models.FileWithInsight, error) {
	log := logger.FromContext(ctx).With().Int64("user_id", userID).Str("file_name", upload.FileName).Logger()

	key := s.objectKey(userID, upload.FileName)
	url, err := s.objects.Upload(ctx, key, upload.ContentType, upload.Body)
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Msg("object upload failed")
		return models.FileWithInsight{}, fmt.Errorf("%w: %w", ErrDependency, err)
	}

	var undo compensation
	undoLog := &logger.Logger{Logger: log}
	undo.add("delete object", func(ctx context.Context) error { return s.objects.Delete(ctx, key) })

	file := models.File{
		UserID:      userID,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
		SizeBytes:   int64(len(upload.Body)),
		StorageKey:  key,
		URL:         url,
	}

	if file.IsPDF() {
		text, extractErr := s.extractor.Extract(ctx, upload.Body)
		if extractErr != nil {
			log.Err(extractErr).Str("func", "*fileService.Upload").Msg("text extraction failed")
			undo.run(ctx, undoLog)
			return models.FileWithInsight{}, fmt.Errorf("%w: %w", ErrDependency, extractErr)
		}
		file.ExtractedText = truncateRunes(text, s.textLimit)
	}

	saved, err := s.fileRepository.CreateFile(ctx, file)
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Msg("saving file row failed")
		undo.run(ctx, undoLog)
		return models.FileWithInsight{}, storeError("saving file failed", err)
	}
	undo.add("delete file row", func(ctx context.Context) error {
		return s.fileRepository.DeleteFile(ctx, userID, saved.FileID)
	})

	summary, err := s.summarizer.Complete(ctx, summaryPrompt(saved))
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Int64("file_id", saved.FileID).Msg("summarizer failed")
		undo.run(ctx, undoLog)
		return models.FileWithInsight{}, fmt.Errorf("%w: %w", ErrDependency, err)
	}

	insight, err := s.insightRepository.CreateInsight(ctx, models.Insight{
		FileID:  saved.FileID,
		UserID:  userID,
		Summary: summary,
	})
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Int64("file_id", saved.FileID).Msg("saving insight failed")
		undo.run(ctx, undoLog)
		return models.FileWithInsight{}, storeError("saving insight failed", err)
	}

	log.Info().Int64("file_id", saved.FileID).Msg("file uploaded and summarised")
	return models.FileWithInsight{File: saved, Insight: &insight}, nil
}

// List returns the user's files newest first, each with its current insight.
func (s *fileService) List(ctx context.Context, userID int64) ([]models.FileWithInsight, error) {
	files, err := s.fileRepository.ListFiles(ctx, userID)
	if err != nil {
		return nil, storeError("listing files failed", err)
	}

	insights, err := s.insightRepository.ListLatestInsights(ctx, userID)
	if err != nil {
		return nil, storeError("listing insights failed", err)
	}

	byFile := make(map[int64]models.Insight, len(insights))
	for _, i := range insights {
		byFile[i.FileID] = i
	}

	result := make([]models.FileWithInsight, 0, len(files))
	for _, f := range files {
		item := models.FileWithInsight{File: f}
		if insight, ok := byFile[f.FileID]; ok {
			item.Insight = &insight
		}
		result = append(result, item)
	}

	return result, nil
}

func (s *fileService) Get(ctx context.Context, userID, fileID int64) (models.FileWithInsight, error) {
	file, err := s.fileRepository.FindFile(ctx, userID, fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		return models.FileWithInsight{}, ErrFileNotFound
	}
	if err != nil {
		return models.FileWithInsight{}, storeError("finding file failed", err)
	}

	result := models.FileWithInsight{File: file}

	insight, err := s.insightRepository.FindLatestInsight(ctx, userID, fileID)
	switch {
	case err == nil:
		result.Insight = &insight
	case !errors.Is(err, store.ErrInsightNotFound):
		return models.FileWithInsight{}, storeError("finding insight failed", err)
	}

	return result, nil
}

// Delete removes the file row, its insights by cascade, and then the blob.
// A blob that cannot be removed is logged and left behind.
func (s *fileService) Delete(ctx context.Context, userID, fileID int64) error {
	log := logger.FromContext(ctx)

	file, err := s.fileRepository.FindFile(ctx, userID, fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return storeError("finding file failed", err)
	}

	err = s.fileRepository.DeleteFile(ctx, userID, fileID)
	if errors.Is(err, store.ErrFileNotFound) {
		return ErrFileNotFound
	}
	if err != nil {
		return storeError("deleting file failed", err)
	}

	if err = s.objects.Delete(context.WithoutCancel(ctx), file.StorageKey); err != nil {
		log.Err(err).Str("func", "*fileService.Delete").Str("key", file.StorageKey).Msg("orphaned object left in storage")
	}

	return nil
}

func (s *fileService) ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.FileWithInsight, error) {
	if err := s.authorizer.AuthorizeRead(ctx, viewerID, ownerID, models.CategoryPDFs); err != nil {
		return nil, err
	}
	return s.List(ctx, ownerID)
}

func (s *fileService) objectKey(userID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("users/%d/%s%s", userID, s.keys.Generate(), ext)
}

func summaryPrompt(file models.File) []models.ChatMessage {
	var content string
	if strings.TrimSpace(file.ExtractedText) != "" {
		content = fmt.Sprintf("Document %q:\n\n%s", file.FileName, file.ExtractedText)
	} else {
		content = fmt.Sprintf("The document %q (%s) has no text layer. It is available at %s.",
			file.FileName, file.ContentType, file.URL)
	}

	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: summaryInstruction},
		{Role: models.RoleUser, Content: content},
	}
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
