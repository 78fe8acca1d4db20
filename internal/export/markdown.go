package export

import "strings"

// ParsedSection is one titled block of a parsed document, tagged with its
// heading level (2 or 3) for styling.
type ParsedSection struct {
	Title string
	Level int
	Lines []string
}

// ParsedDocument is the renderer's input: a title, an optional subtitle and
// an ordered flat list of sections.
type ParsedDocument struct {
	Title    string
	Subtitle string
	Sections []ParsedSection
}

// ParseMarkdown converts free-form markdown into an ordered sequence of
// titled sections in a single line-oriented pass.
//
// The first top-level heading wins the document title; a "Last updated"
// emphasis line becomes the subtitle; "##" and "###" open new sections
// (nesting is flat, the level only tags styling); non-blank lines are
// appended trimmed to the open section; lines before the first section
// heading are discarded.
func ParseMarkdown(markdown string) ParsedDocument {
	var doc ParsedDocument
	var current *ParsedSection

	closeSection := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			}
		case strings.HasPrefix(line, "*Last updated:") || strings.HasPrefix(line, "_Last updated:"):
			doc.Subtitle = strings.TrimSpace(strings.Trim(line, "*_ "))
		case strings.HasPrefix(line, "## "):
			closeSection()
			current = &ParsedSection{Title: strings.TrimSpace(strings.TrimPrefix(line, "## ")), Level: 2}
		case strings.HasPrefix(line, "### "):
			closeSection()
			current = &ParsedSection{Title: strings.TrimSpace(strings.TrimPrefix(line, "### ")), Level: 3}
		default:
			if current != nil && strings.TrimSpace(line) != "" {
				current.Lines = append(current.Lines, strings.TrimSpace(line))
			}
		}
	}
	closeSection()

	return doc
}
