package markdown

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/studybuddy/core/internal/ports"
)

const defaultRenderTimeout = 30 * time.Second

// ChromePDFRenderer prints HTML to PDF with a headless Chromium
type ChromePDFRenderer struct {
	timeout time.Duration
}

// NewChromePDFRenderer creates a renderer bounded by timeout per document
func NewChromePDFRenderer(timeout time.Duration) *ChromePDFRenderer {
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &ChromePDFRenderer{timeout: timeout}
}

var _ ports.PDFRenderer = (*ChromePDFRenderer)(nil)

func (r *ChromePDFRenderer) RenderPDF(parent context.Context, html []byte) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, r.timeout)
	defer timeoutCancel()

	var pdf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			pdf = data
			return err
		}),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("pdf render failed: %w", err)
	}
	return pdf, nil
}
