package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// FallbackTitle is used when a document carries no top-level heading.
const FallbackTitle = "Policy Document"

const stylesheet = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; line-height: 1.6; color: #444; margin: 0; }
.header { border-bottom: 2px solid #333; padding-bottom: 20px; margin-bottom: 30px; }
.title { font-size: 22px; font-weight: bold; color: #1a1a1a; margin: 0 0 8px 0; }
.subtitle { font-size: 12px; color: #666; font-style: italic; margin: 0 0 5px 0; }
.section { margin: 16px 0 8px 0; break-inside: avoid; }
.section-title { font-size: 14px; font-weight: bold; color: #333; margin: 0 0 8px 0; }
.subsection-title { font-size: 12px; font-weight: bold; color: #444; margin: 0 0 6px 0; }
.paragraph { text-align: justify; margin: 0 0 8px 0; }
ul.items { margin: 0 0 8px 0; padding-left: 15px; }
ul.items li { margin-bottom: 4px; }
`

var inlineRenderer = goldmark.New()

// renderInline converts the markdown inline spans of a single line (bold,
// emphasis, links) to HTML, without block-level wrapping.
func renderInline(line string) string {
	var buf bytes.Buffer
	if err := inlineRenderer.Convert([]byte(line), &buf); err != nil {
		return html.EscapeString(line)
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out
}

// BuildHTML lays the parsed document out as a self-contained HTML page
// ready for printing: a header block, then one non-splittable block per
// section with its lines styled as list items or justified paragraphs.
func BuildHTML(doc ParsedDocument) string {
	title := doc.Title
	if title == "" {
		title = FallbackTitle
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>%s</style>\n</head>\n<body>\n", stylesheet)

	b.WriteString("<div class=\"header\">\n")
	fmt.Fprintf(&b, "<div class=\"title\">%s</div>\n", html.EscapeString(title))
	if doc.Subtitle != "" {
		fmt.Fprintf(&b, "<div class=\"subtitle\">%s</div>\n", html.EscapeString(doc.Subtitle))
	}
	b.WriteString("</div>\n")

	for _, section := range doc.Sections {
		b.WriteString("<div class=\"section\">\n")
		headingClass := "section-title"
		if section.Level == 3 {
			headingClass = "subsection-title"
		}
		fmt.Fprintf(&b, "<div class=\"%s\">%s</div>\n", headingClass, html.EscapeString(section.Title))
		writeLines(&b, section.Lines)
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// writeLines emits paragraphs and groups consecutive list items into one
// list element.
func writeLines(b *strings.Builder, lines []string) {
	inList := false
	for _, line := range lines {
		if ClassifyLine(line) == StyleListItem {
			if !inList {
				b.WriteString("<ul class=\"items\">\n")
				inList = true
			}
			fmt.Fprintf(b, "<li>%s</li>\n", renderInline(StripListMarker(line)))
			continue
		}
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
		fmt.Fprintf(b, "<div class=\"paragraph\">%s</div>\n", renderInline(line))
	}
	if inList {
		b.WriteString("</ul>\n")
	}
}
