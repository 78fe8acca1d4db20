package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 dimensions and margins in inches.
const (
	paperWidthInches   = 8.27
	paperHeightInches  = 11.69
	marginInches       = 0.6
	marginBottomInches = 0.8
)

const footerTemplate = `<div style="font-size:9px; color:#999; width:100%; text-align:right; padding-right:48px;">Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`

// Chrome requires a non-empty header template even when nothing is shown.
const headerTemplate = `<div></div>`

// Renderer prints a parsed document to PDF through headless Chrome. Page
// breaks, the running page-number footer and total-page counting come from
// the browser's print pipeline.
type Renderer struct {
	Timeout time.Duration
}

// NewRenderer creates a renderer with the given print timeout.
func NewRenderer(timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Renderer{Timeout: timeout}
}

// RenderPDF lays the document onto fixed-size pages and returns the
// complete binary. Any failure is fatal for the export; no partial output
// is produced.
func (r *Renderer) RenderPDF(ctx context.Context, doc ParsedDocument) ([]byte, error) {
	html := BuildHTML(doc)

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(bctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginBottomInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(headerTemplate).
				WithFooterTemplate(footerTemplate).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print document: %w", err)
	}
	return pdf, nil
}
