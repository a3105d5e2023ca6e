package metrics

import (
	"context"
	"time"

	"github.com/studybuddy/core/internal/ports"
)

type instrumentedBackend struct {
	next    ports.AIBackend
	metrics *Metrics
}

// InstrumentAIBackend counts and times every call made through backend.
// Health checks are passed through unrecorded.
func InstrumentAIBackend(backend ports.AIBackend, m *Metrics) ports.AIBackend {
	if m == nil {
		return backend
	}
	return &instrumentedBackend{next: backend, metrics: m}
}

func (b *instrumentedBackend) GenerateNotes(ctx context.Context, req ports.GenerateNotesInput) (*ports.GeneratedNotes, error) {
	start := time.Now()
	out, err := b.next.GenerateNotes(ctx, req)
	b.metrics.observeUpstream("generate_notes", start, err)
	return out, err
}

func (b *instrumentedBackend) Chat(ctx context.Context, req ports.BackendChatInput) (*ports.BackendChatOutput, error) {
	start := time.Now()
	out, err := b.next.Chat(ctx, req)
	b.metrics.observeUpstream("chat", start, err)
	return out, err
}

func (b *instrumentedBackend) ChatImage(ctx context.Context, req ports.ImageChatInput) (*ports.BackendChatOutput, error) {
	start := time.Now()
	out, err := b.next.ChatImage(ctx, req)
	b.metrics.observeUpstream("chat_image", start, err)
	return out, err
}

func (b *instrumentedBackend) Extract(ctx context.Context, files []ports.Upload, model string) (*ports.ExtractResult, error) {
	start := time.Now()
	out, err := b.next.Extract(ctx, files, model)
	b.metrics.observeUpstream("extract", start, err)
	return out, err
}

func (b *instrumentedBackend) Export(ctx context.Context, req ports.ExportInput) (*ports.ExportedDocument, error) {
	start := time.Now()
	out, err := b.next.Export(ctx, req)
	b.metrics.observeUpstream("export", start, err)
	return out, err
}

func (b *instrumentedBackend) Health(ctx context.Context) error {
	return b.next.Health(ctx)
}
