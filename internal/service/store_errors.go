package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/health-mate/internal/store"
)

// storeError wraps an unexpected repository error, tagging transient
// database failures with ErrUnavailable.
func storeError(msg string, err error) error {
	if errors.Is(err, store.ErrTemporarilyUnavailable) {
		return fmt.Errorf("%s: %w: %w", msg, ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
