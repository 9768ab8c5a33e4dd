package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/health-mate/internal/validators"
	"github.com/go-chi/chi/v5"
)

// maxJSONBodySize bounds JSON request bodies.
const maxJSONBodySize = 1 << 20

// decodeJSON reads the request body into dst and runs the validator over it.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return h.validator.Validate(r.Context(), dst)
}

// pathID parses a positive int64 URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &validators.FieldError{Field: name, Err: validators.ErrInvalidID}
	}
	return id, nil
}
