package export

import (
	"strings"
	"testing"
)

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		line string
		want LineStyle
	}{
		{"- Use MFA", StyleListItem},
		{"• Rotate keys", StyleListItem},
		{"1. First step", StyleListItem},
		{"12. Later step", StyleListItem},
		{"Plain prose here.", StyleParagraph},
		{"1password is our vault.", StyleParagraph},
	}
	for _, tc := range cases {
		if got := ClassifyLine(tc.line); got != tc.want {
			t.Errorf("ClassifyLine(%q): got %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestStripListMarker(t *testing.T) {
	cases := map[string]string{
		"- Use MFA":     "Use MFA",
		"• Rotate keys": "Rotate keys",
		"3. Do things":  "Do things",
	}
	for in, want := range cases {
		if got := StripListMarker(in); got != want {
			t.Errorf("StripListMarker(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestBuildHTMLHeaderAndSections(t *testing.T) {
	doc := ParsedDocument{
		Title:    "Acme IT Security Policy",
		Subtitle: "Last updated: 2026-09-01",
		Sections: []ParsedSection{
			{Title: "Scope", Level: 2, Lines: []string{"Applies to **all** staff."}},
			{Title: "Details", Level: 3, Lines: []string{"- Use MFA", "- Rotate keys", "Review quarterly."}},
		},
	}
	out := BuildHTML(doc)

	for _, want := range []string{
		"Acme IT Security Policy",
		"Last updated: 2026-09-01",
		`class="section-title"`,
		`class="subsection-title"`,
		"<li>Use MFA</li>",
		"<li>Rotate keys</li>",
		"<strong>all</strong>",
		"break-inside: avoid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(out, "<li>- Use MFA") {
		t.Error("list marker must be stripped from rendered items")
	}
}

func TestBuildHTMLFallbackTitle(t *testing.T) {
	out := BuildHTML(ParsedDocument{})
	if !strings.Contains(out, FallbackTitle) {
		t.Errorf("missing fallback title, got %s", out)
	}
}

func TestBuildHTMLEscapesHeadings(t *testing.T) {
	out := BuildHTML(ParsedDocument{
		Title:    "A <b>title</b>",
		Sections: []ParsedSection{{Title: "S & T", Level: 2, Lines: []string{"ok"}}},
	})
	if strings.Contains(out, "<b>title</b>") {
		t.Error("title must be escaped")
	}
	if !strings.Contains(out, "S &amp; T") {
		t.Error("section heading must be escaped")
	}
}

func TestRenderInlineKeepsPlainTextIntact(t *testing.T) {
	if got := renderInline("plain text"); got != "plain text" {
		t.Errorf("renderInline: got %q", got)
	}
}
