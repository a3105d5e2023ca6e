// Package markdown renders note markdown to HTML and PDF and reads
// markdown files with front matter.
package markdown

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/studybuddy/core/internal/ports"
)

// Renderer converts markdown to HTML using goldmark with GFM extensions.
// Raw HTML in notes is escaped. A single Renderer is safe for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer creates a new markdown renderer
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.TaskList,
				extension.Footnote,
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithXHTML()),
		),
	}
}

var _ ports.MarkdownRenderer = (*Renderer)(nil)

func (r *Renderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

const documentStyle = `body{font-family:-apple-system,"Segoe UI",Helvetica,Arial,sans-serif;line-height:1.6;max-width:48rem;margin:2rem auto;color:#1f2937}
pre,code{font-family:ui-monospace,Menlo,monospace;background:#f3f4f6}
pre{padding:1rem;overflow-x:auto}
table{border-collapse:collapse}td,th{border:1px solid #d1d5db;padding:.25rem .5rem}
blockquote{border-left:4px solid #6366f1;margin-left:0;padding-left:1rem;color:#4b5563}`

// Document renders markdown into a standalone HTML page titled title
func (r *Renderer) Document(title string, markdown []byte) ([]byte, error) {
	body, err := r.Render(markdown)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title><style>")
	buf.WriteString(documentStyle)
	buf.WriteString("</style></head><body>\n")
	buf.Write(body)
	buf.WriteString("</body></html>\n")
	return buf.Bytes(), nil
}
