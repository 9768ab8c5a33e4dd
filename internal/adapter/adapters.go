package adapter

import (
	"context"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
)

// Adapters groups the external collaborators handed to the service layer.
type Adapters struct {
	ObjectStorage    ObjectStorage
	TextExtractor    TextExtractor
	Summarizer       Summarizer
	IdentityProvider IdentityProvider
}

// NewAdapters builds every collaborator client from cfg.
func NewAdapters(ctx context.Context, cfg config.StructuredConfig, log *logger.Logger) (*Adapters, error) {
	objects, err := NewS3ObjectStorage(ctx, cfg.Storage.Objects, log)
	if err != nil {
		return nil, err
	}

	extractor, err := NewTikaTextExtractor(cfg.Adapter.Extractor, log)
	if err != nil {
		return nil, err
	}

	summarizer, err := NewOpenAISummarizer(cfg.Adapter.AI, log)
	if err != nil {
		return nil, err
	}

	return &Adapters{
		ObjectStorage:    objects,
		TextExtractor:    extractor,
		Summarizer:       summarizer,
		IdentityProvider: NewGoogleIdentityProvider(cfg.OAuth, log),
	}, nil
}
