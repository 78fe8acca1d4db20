package crawl

import (
	"fmt"
	"strings"
)

const (
	// MaxPageChars caps each page body before concatenation.
	MaxPageChars = 10000
	// MaxDigestChars caps the whole digest fed back into the conversation.
	MaxDigestChars = 80000
	// TruncationMarker is appended when the digest is cut at MaxDigestChars.
	TruncationMarker = "\n\n[Content truncated due to length]"
)

// FormatPages turns crawled pages into a size-bounded textual digest the
// model can read as a tool result.
func FormatPages(pages []Page, originURL string) string {
	if len(pages) == 0 {
		return fmt.Sprintf("No pages could be fetched from %s.", originURL)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fetched %d page(s) from %s:\n\n", len(pages), originURL)
	for _, p := range pages {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = "Untitled"
		}
		body := p.Markdown
		if len(body) > MaxPageChars {
			body = body[:MaxPageChars]
		}
		fmt.Fprintf(&b, "## %s\nSource: %s\n\n%s\n\n", title, p.SourceURL, body)
	}

	digest := b.String()
	if len(digest) > MaxDigestChars {
		digest = digest[:MaxDigestChars] + TruncationMarker
	}
	return digest
}
