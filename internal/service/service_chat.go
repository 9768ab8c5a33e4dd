package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/health-mate/internal/adapter"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/store"
	"github.com/MKhiriev/health-mate/models"
)

const (
	assistantPersona = `You are HealthMate, a friendly assistant that helps people understand
their own medical records. Answer in plain language, be honest about
uncertainty, and recommend seeing a clinician for anything that needs a
diagnosis or treatment decision.`

	defaultTitleLength = 40
)

type chatService struct {
	chatRepository store.ChatRepository
	fileRepository store.FileRepository

	summarizer adapter.Summarizer
	authorizer ReadAuthorizer

	now func() time.Time

	logger *logger.Logger
}

func NewChatService(chatRepository store.ChatRepository, fileRepository store.FileRepository, summarizer adapter.Summarizer, authorizer ReadAuthorizer, logger *logger.Logger) ChatService {
	return &chatService{
		chatRepository: chatRepository,
		fileRepository: fileRepository,
		summarizer:     summarizer,
		authorizer:     authorizer,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

// Create starts a conversation with its first user message and the
// assistant's reply. Nothing is stored if the assistant fails. An attached
// file must belong to userID.
func (c *chatService) Create(ctx context.Context, userID int64, req models.CreateChatRequest) (models.Chat, error) {
	var file *models.File
	if req.FileID != nil {
		found, err := c.fileRepository.FindFile(ctx, userID, *req.FileID)
		if errors.Is(err, store.ErrFileNotFound) {
			return models.Chat{}, ErrFileNotFound
		}
		if err != nil {
			return models.Chat{}, storeError("finding attached file failed", err)
		}
		file = &found
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = truncateRunes(strings.Join(strings.Fields(req.Message), " "), defaultTitleLength)
	}

	messages := models.Messages{c.message(models.RoleUser, req.Message)}
	messages, err := c.reply(ctx, messages, file)
	if err != nil {
		return models.Chat{}, err
	}

	chat, err := c.chatRepository.CreateChat(ctx, models.Chat{
		UserID:   userID,
		Title:    title,
		FileID:   req.FileID,
		Messages: messages,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.Create").Int64("user_id", userID).Msg("saving chat failed")
		return models.Chat{}, storeError("saving chat failed", err)
	}

	return chat, nil
}

func (c *chatService) List(ctx context.Context, userID int64) ([]models.Chat, error) {
	chats, err := c.chatRepository.ListChats(ctx, userID)
	if err != nil {
		return nil, storeError("listing chats failed", err)
	}
	return chats, nil
}

func (c *chatService) Get(ctx context.Context, userID, chatID int64) (models.Chat, error) {
	chat, err := c.chatRepository.FindChat(ctx, userID, chatID)
	if err != nil {
		return models.Chat{}, c.chatError("finding chat failed", err)
	}
	return chat, nil
}

// SendMessage appends the user's message and the assistant's reply. The
// attached document, if it still exists, is given to the assistant as
// context.
func (c *chatService) SendMessage(ctx context.Context, userID, chatID int64, message string) (models.Chat, error) {
	chat, err := c.chatRepository.FindChat(ctx, userID, chatID)
	if err != nil {
		return models.Chat{}, c.chatError("finding chat failed", err)
	}

	var file *models.File
	if chat.FileID != nil {
		found, findErr := c.fileRepository.FindFile(ctx, userID, *chat.FileID)
		switch {
		case findErr == nil:
			file = &found
		case !errors.Is(findErr, store.ErrFileNotFound):
			return models.Chat{}, storeError("finding attached file failed", findErr)
		}
	}

	messages := append(chat.Messages, c.message(models.RoleUser, message))
	messages, err = c.reply(ctx, messages, file)
	if err != nil {
		return models.Chat{}, err
	}

	updated, err := c.chatRepository.UpdateMessages(ctx, userID, chatID, messages)
	if err != nil {
		return models.Chat{}, c.chatError("saving messages failed", err)
	}

	return updated, nil
}

func (c *chatService) Rename(ctx context.Context, userID, chatID int64, title string) (models.Chat, error) {
	chat, err := c.chatRepository.RenameChat(ctx, userID, chatID, strings.TrimSpace(title))
	if err != nil {
		return models.Chat{}, c.chatError("renaming chat failed", err)
	}
	return chat, nil
}

func (c *chatService) Delete(ctx context.Context, userID, chatID int64) error {
	if err := c.chatRepository.DeleteChat(ctx, userID, chatID); err != nil {
		return c.chatError("deleting chat failed", err)
	}
	return nil
}

func (c *chatService) ListShared(ctx context.Context, viewerID, ownerID int64) ([]models.Chat, error) {
	if err := c.authorizer.AuthorizeRead(ctx, viewerID, ownerID, models.CategoryChats); err != nil {
		return nil, err
	}
	return c.List(ctx, ownerID)
}

// reply asks the summarizer to answer history and returns history with the
// assistant turn appended.
func (c *chatService) reply(ctx context.Context, history models.Messages, file *models.File) (models.Messages, error) {
	prompt := make([]models.ChatMessage, 0, len(history)+2)
	prompt = append(prompt, models.ChatMessage{Role: models.RoleSystem, Content: assistantPersona})
	if file != nil && strings.TrimSpace(file.ExtractedText) != "" {
		prompt = append(prompt, models.ChatMessage{
			Role:    models.RoleSystem,
			Content: fmt.Sprintf("The user attached the document %q. Its text:\n\n%s", file.FileName, file.ExtractedText),
		})
	}
	prompt = append(prompt, history...)

	answer, err := c.summarizer.Complete(ctx, prompt)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*chatService.reply").Msg("assistant failed")
		return nil, fmt.Errorf("%w: %w", ErrDependency, err)
	}

	return append(history, c.message(models.RoleAssistant, answer)), nil
}

func (c *chatService) message(role models.Role, content string) models.ChatMessage {
	return models.ChatMessage{Role: role, Content: content, CreatedAt: c.now()}
}

func (c *chatService) chatError(msg string, err error) error {
	if errors.Is(err, store.ErrChatNotFound) {
		return ErrChatNotFound
	}
	return storeError(msg, err)
}
