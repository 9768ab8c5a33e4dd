package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/health-mate/internal/logger"
	"github.com/MKhiriev/health-mate/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- withTraceID ----

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name           string
		requestTraceID string
	}{
		{name: "trace ID from request header is reused", requestTraceID: "my-custom-trace-id"},
		{name: "no trace ID in request, UUID generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			var ctxLogger *logger.Logger

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxLogger = logger.FromRequest(r)
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestTraceID != "" {
				req.Header.Set(traceIDHeader, tt.requestTraceID)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.requestTraceID != "" {
				assert.Equal(t, tt.requestTraceID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			assert.NotNil(t, ctxLogger)
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	buf := &bytes.Buffer{}
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(traceIDHeader, "trace-abc")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"trace_id":"trace-abc"`)
}

// ---- withLogging ----

func TestWithLogging_LogsRequest(t *testing.T) {
	buf := &bytes.Buffer{}
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodPost, "/vitals", nil)
	req = req.WithContext(zerolog.New(buf).WithContext(req.Context()))
	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, `"uri":"/vitals"`)
	assert.Contains(t, out, `"method":"POST"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"size":5`)
	assert.Contains(t, out, `"duration"`)
}

func TestWithLogging_ImplicitStatusIsOK(t *testing.T) {
	buf := &bytes.Buffer{}
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req = req.WithContext(zerolog.New(buf).WithContext(req.Context()))
	h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"status":200`)
}

// ---- responseWriter ----

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestResponseWriter_WriteCountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = w.Write([]byte("de"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, "abcde", rec.Body.String())
	assert.Same(t, rec, w.Unwrap())
}

// ---- notFound ----

func buildRouter() *chi.Mux {
	h := &Handler{logger: logger.Nop()}
	router := chi.NewRouter()

	router.Get("/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Route("/things", func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}

func TestNotFound_MethodsAndPaths(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/items", http.StatusOK},
		{http.MethodPost, "/items", http.StatusNotFound},
		{http.MethodPost, "/things", http.StatusCreated},
		{http.MethodGet, "/things", http.StatusNotFound},
		{http.MethodDelete, "/things/5", http.StatusNoContent},
		{http.MethodPut, "/things/5", http.StatusNotFound},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
		{"BREW", "/items", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNotFound {
				assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
			}
		})
	}
}

// ---- auth ----

func TestAuth_PutsUserIDIntoContext(t *testing.T) {
	env := newTestEnv(t)
	var gotUserID int64
	var ok bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, ok = utils.GetUserIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionToken(2)})
	rec := httptest.NewRecorder()
	env.handler.auth(next).ServeHTTP(rec, req)

	require.True(t, ok)
	assert.Equal(t, int64(2), gotUserID)
}

func TestAuth_IgnoresAuthorizationHeader(t *testing.T) {
	env := newTestEnv(t)
	called := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(1))
	rec := httptest.NewRecorder()
	env.handler.auth(next).ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "UNAUTHENTICATED"))
}
