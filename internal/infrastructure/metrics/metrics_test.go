package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/ports"
)

type stubBackend struct {
	err error
}

func (s stubBackend) GenerateNotes(context.Context, ports.GenerateNotesInput) (*ports.GeneratedNotes, error) {
	return &ports.GeneratedNotes{Notes: "n"}, s.err
}

func (s stubBackend) Chat(context.Context, ports.BackendChatInput) (*ports.BackendChatOutput, error) {
	return &ports.BackendChatOutput{Message: "m"}, s.err
}

func (s stubBackend) ChatImage(context.Context, ports.ImageChatInput) (*ports.BackendChatOutput, error) {
	return &ports.BackendChatOutput{Message: "m"}, s.err
}

func (s stubBackend) Extract(context.Context, []ports.Upload, string) (*ports.ExtractResult, error) {
	return &ports.ExtractResult{}, s.err
}

func (s stubBackend) Export(context.Context, ports.ExportInput) (*ports.ExportedDocument, error) {
	return &ports.ExportedDocument{}, s.err
}

func (s stubBackend) Health(context.Context) error { return s.err }

func TestInstrumentAIBackend(t *testing.T) {
	ctx := context.Background()
	m := New()

	ok := InstrumentAIBackend(stubBackend{}, m)
	_, err := ok.Chat(ctx, ports.BackendChatInput{})
	require.NoError(t, err)
	_, err = ok.Chat(ctx, ports.BackendChatInput{})
	require.NoError(t, err)

	failing := InstrumentAIBackend(stubBackend{err: errors.New("down")}, m)
	_, err = failing.GenerateNotes(ctx, ports.GenerateNotesInput{})
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("chat", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("generate_notes", "error")))
	assert.Zero(t, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("generate_notes", "ok")))
}

func TestInstrumentAIBackend_NilMetrics(t *testing.T) {
	backend := stubBackend{}
	assert.Equal(t, ports.AIBackend(backend), InstrumentAIBackend(backend, nil))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/folders/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, path := range []string{"/folders/1", "/folders/2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/folders/:id", "200")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `studybuddy_http_requests_total{method="GET",path="/folders/:id",status="200"} 2`)
}
