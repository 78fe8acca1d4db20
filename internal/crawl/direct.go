package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"
)

// DirectFetcher is the fallback used when no crawl service is configured.
// It renders a single page in headless Chrome and extracts the readable
// article content.
type DirectFetcher struct {
	Timeout  time.Duration
	MaxChars int
}

// NewDirectFetcher creates a fetcher with sane bounds.
func NewDirectFetcher(timeout time.Duration) *DirectFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DirectFetcher{Timeout: timeout, MaxChars: MaxPageChars}
}

// Fetch implements PageFetcher for a single page.
func (f *DirectFetcher) Fetch(ctx context.Context, rawURL string) ([]Page, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	html, err := fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", rawURL, err)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content from %s: %w", rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if f.MaxChars > 0 && len(text) > f.MaxChars {
		text = text[:f.MaxChars]
	}

	return []Page{{
		SourceURL: rawURL,
		Title:     strings.TrimSpace(article.Title),
		Markdown:  text,
	}}, nil
}

func fetchHTML(ctx context.Context, rawURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}
