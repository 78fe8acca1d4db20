package crawl

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/policypilot/policypilot/internal/cache"
)

type stubFetcher struct {
	pages []Page
	err   error
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]Page, error) {
	f.calls++
	return f.pages, f.err
}

func TestServiceDigestSuccess(t *testing.T) {
	fetcher := &stubFetcher{pages: []Page{{SourceURL: "https://example.com", Title: "Home", Markdown: "hello"}}}
	svc := NewService(fetcher, nil, 0, log.New(io.Discard, "", 0))

	got := svc.Digest(context.Background(), "https://example.com")
	if !strings.Contains(got, "hello") {
		t.Errorf("digest missing page body: %q", got)
	}
}

func TestServiceDigestFoldsErrorsToText(t *testing.T) {
	fetcher := &stubFetcher{err: ErrNoJobID}
	svc := NewService(fetcher, nil, 0, log.New(io.Discard, "", 0))

	got := svc.Digest(context.Background(), "https://example.com")
	if !strings.Contains(got, "No crawl job ID returned") {
		t.Errorf("error text must surface the fixed message: %q", got)
	}
}

func TestServiceDigestUsesCache(t *testing.T) {
	fetcher := &stubFetcher{pages: []Page{{SourceURL: "u", Title: "t", Markdown: "cached body"}}}
	store := cache.NewMemoryStore()
	svc := NewService(fetcher, store, time.Minute, log.New(io.Discard, "", 0))

	first := svc.Digest(context.Background(), "https://example.com")
	second := svc.Digest(context.Background(), "https://example.com")

	if first != second {
		t.Error("cached digest should be identical")
	}
	if fetcher.calls != 1 {
		t.Errorf("second digest should come from cache, fetcher called %d times", fetcher.calls)
	}
}

func TestServiceDigestDoesNotCacheErrors(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	store := cache.NewMemoryStore()
	svc := NewService(fetcher, store, time.Minute, log.New(io.Discard, "", 0))

	_ = svc.Digest(context.Background(), "https://example.com")
	_ = svc.Digest(context.Background(), "https://example.com")

	if fetcher.calls != 2 {
		t.Errorf("error results must not be cached, fetcher called %d times", fetcher.calls)
	}
}
