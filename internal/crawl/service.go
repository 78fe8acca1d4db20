package crawl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/policypilot/policypilot/internal/cache"
)

// Service combines a page fetcher, the digest formatter and an optional
// digest cache. Every outcome, success or failure, is expressed as plain
// text so the model can read and react to it inside the conversation.
type Service struct {
	fetcher  PageFetcher
	cache    cache.Store
	cacheTTL time.Duration
	logger   *log.Logger
}

// NewService wires a fetcher with an optional cache. A nil store disables
// caching.
func NewService(fetcher PageFetcher, store cache.Store, ttl time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.Writer(), "[CRAWL] ", log.LstdFlags)
	}
	return &Service{fetcher: fetcher, cache: store, cacheTTL: ttl, logger: logger}
}

// Digest fetches rawURL and returns the formatted digest, or an error text
// the model can act on. It never fails the turn.
func (s *Service) Digest(ctx context.Context, rawURL string) string {
	if s.cache != nil {
		if digest, ok := s.cache.Get(ctx, rawURL); ok {
			s.logger.Printf("digest cache hit for %s", rawURL)
			return digest
		}
	}

	pages, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logger.Printf("fetch failed for %s: %v", rawURL, err)
		return fmt.Sprintf("Error fetching %s: %v", rawURL, err)
	}

	digest := FormatPages(pages, rawURL)
	if s.cache != nil {
		s.cache.Set(ctx, rawURL, digest, s.cacheTTL)
	}
	return digest
}
