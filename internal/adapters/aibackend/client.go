package aibackend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// Error is a non-2xx reply from the AI backend
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai backend returned %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the AI backend over multipart HTTP
type Client struct {
	baseURL      string
	httpClient   *http.Client
	historyLimit int
	logger       *logger.Logger
}

// NewClient creates a new AI backend client
func NewClient(cfg config.AIBackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		historyLimit: cfg.HistoryLimit,
		logger:       log.WithComponent("ai_backend"),
	}
}

var _ ports.AIBackend = (*Client)(nil)

func (c *Client) GenerateNotes(ctx context.Context, req ports.GenerateNotesInput) (*ports.GeneratedNotes, error) {
	form := newForm()
	form.field("model", req.Model)
	for _, f := range req.Files {
		form.file("files", f)
	}

	var out ports.GeneratedNotes
	if err := c.postJSON(ctx, "generate_notes", req.Model, "/api/notes/generate", form, &out); err != nil {
		return nil, err
	}
	if out.ModelUsed == "" {
		out.ModelUsed = req.Model
	}
	return &out, nil
}

// Chat forwards a message with at most historyLimit previous turns
func (c *Client) Chat(ctx context.Context, req ports.BackendChatInput) (*ports.BackendChatOutput, error) {
	history := req.History
	if c.historyLimit > 0 && len(history) > c.historyLimit {
		history = history[len(history)-c.historyLimit:]
	}
	if history == nil {
		history = []entities.ChatMessage{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode chat history: %w", err)
	}

	form := newForm()
	form.field("message", req.Message)
	form.field("model", req.Model)
	form.field("chat_history", string(historyJSON))
	form.field("use_rag", strconv.FormatBool(req.UseRAG))
	if req.ContextNotes != "" {
		form.field("context_notes", req.ContextNotes)
	}

	var out ports.BackendChatOutput
	if err := c.postJSON(ctx, "chat", req.Model, "/api/assistant/chat", form, &out); err != nil {
		return nil, err
	}
	if out.Model == "" {
		out.Model = req.Model
	}
	if out.Sources == nil {
		out.Sources = []ports.Source{}
	}
	return &out, nil
}

// ChatImage asks a vision model about a single image. Nothing is kept as
// conversation history.
func (c *Client) ChatImage(ctx context.Context, req ports.ImageChatInput) (*ports.BackendChatOutput, error) {
	form := newForm()
	form.field("message", req.Message)
	form.field("model", req.Model)
	form.file("file", req.Image)

	var out ports.BackendChatOutput
	if err := c.postJSON(ctx, "chat_image", req.Model, "/api/assistant/upload-image", form, &out); err != nil {
		return nil, err
	}
	if out.Model == "" {
		out.Model = req.Model
	}
	return &out, nil
}

func (c *Client) Extract(ctx context.Context, files []ports.Upload, model string) (*ports.ExtractResult, error) {
	form := newForm()
	form.field("model", model)
	for _, f := range files {
		form.file("files", f)
	}

	var out ports.ExtractResult
	if err := c.postJSON(ctx, "extract", model, "/api/pen2pdf/extract", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export returns the rendered document bytes with the backend's filename
func (c *Client) Export(ctx context.Context, req ports.ExportInput) (*ports.ExportedDocument, error) {
	form := newForm()
	form.field("content", req.Content)
	form.field("title", req.Title)
	form.field("format", string(req.Format))
	form.field("add_watermark", strconv.FormatBool(req.AddWatermark))

	start := time.Now()
	resp, err := c.post(ctx, "/api/pen2pdf/export", form)
	c.logger.LogUpstreamCall("export", string(req.Format), float64(time.Since(start).Milliseconds()), err)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	doc := &ports.ExportedDocument{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		doc.Filename = params["filename"]
	}
	return doc, nil
}

// Health checks the backend root endpoint
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return &Error{StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, operation, model, path string, form *form, out interface{}) error {
	start := time.Now()
	resp, err := c.post(ctx, path, form)
	if err == nil {
		defer resp.Body.Close()
		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			err = fmt.Errorf("decode %s response: %w", operation, decodeErr)
		}
	}
	c.logger.LogUpstreamCall(operation, model, float64(time.Since(start).Milliseconds()), err)
	return err
}

// post sends the form and returns the response when the status is 2xx
func (c *Client) post(ctx context.Context, path string, form *form) (*http.Response, error) {
	body, contentType, err := form.finish()
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ai backend unreachable: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readError(resp)
	}
	return resp, nil
}

// readError extracts the backend's {"detail": ...} message when present
func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Detail interface{} `json:"detail"`
	}
	detail := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Detail != nil {
		if s, ok := payload.Detail.(string); ok {
			detail = s
		} else if b, err := json.Marshal(payload.Detail); err == nil {
			detail = string(b)
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &Error{StatusCode: resp.StatusCode, Detail: detail}
}

type form struct {
	buf *bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	buf := &bytes.Buffer{}
	return &form{buf: buf, w: multipart.NewWriter(buf)}
}

func (f *form) field(name, value string) {
	if f.err != nil {
		return
	}
	f.err = f.w.WriteField(name, value)
}

func (f *form) file(name string, upload ports.Upload) {
	if f.err != nil {
		return
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, upload.Filename))
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return
	}
	_, f.err = part.Write(upload.Data)
}

func (f *form) finish() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.w.Close(); err != nil {
		return nil, "", err
	}
	return f.buf, f.w.FormDataContentType(), nil
}
