package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/health-mate/internal/config"
	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/MKhiriev/health-mate/models"
)

type tikaTextExtractor struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewTikaTextExtractor constructs a [TextExtractor] talking to an Apache
// Tika server at cfg.URL.
func NewTikaTextExtractor(cfg config.Extractor, log *logger.Logger) (TextExtractor, error) {
	client, err := utils.NewHTTPClient(cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: extractor url: %w", ErrInvalidAdapterCfg, err)
	}

	return &tikaTextExtractor{client: client, logger: log}, nil
}

// Extract implements [TextExtractor] via PUT /tika, asking for plain text.
// A document without a text layer yields an empty string and no error.
func (t *tikaTextExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	log := logger.FromContext(ctx)

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", models.ContentTypePDF).
		SetHeader("Accept", "text/plain").
		SetBody(document).
		Put("/tika")
	if err != nil {
		log.Err(err).Str("func", "*tikaTextExtractor.Extract").Msg("extract request failed")
		return "", fmt.Errorf("extract request: %w", err)
	}
	if resp.StatusCode() == http.StatusNoContent {
		return "", nil
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*tikaTextExtractor.Extract").Int("status", resp.StatusCode()).Msg("extractor returned error")
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
