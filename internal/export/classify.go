package export

import (
	"regexp"
	"strings"
)

// LineStyle tags a content line for rendering.
type LineStyle int

const (
	StyleParagraph LineStyle = iota
	StyleListItem
)

var numberedPrefix = regexp.MustCompile(`^\d+\.`)

// ClassifyLine maps a content line to its render style. List detection is
// a render-time concern; the parser stores lines verbatim.
func ClassifyLine(line string) LineStyle {
	if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || numberedPrefix.MatchString(line) {
		return StyleListItem
	}
	return StyleParagraph
}

var listMarker = regexp.MustCompile(`^(?:[-•]\s*|\d+\.\s*)`)

// StripListMarker removes the leading list marker from a list-item line.
func StripListMarker(line string) string {
	return listMarker.ReplaceAllString(line, "")
}
