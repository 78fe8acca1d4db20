package policy

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/policypilot/policypilot/internal/export"
	"github.com/policypilot/policypilot/internal/llm"
)

// Synthesizer issues the single-shot LLM request that produces a markdown
// policy document from a structured prompt.
type Synthesizer struct {
	provider llm.Provider
	logger   *log.Logger
	now      func() time.Time
}

// NewSynthesizer creates a synthesizer on top of a completion provider.
func NewSynthesizer(provider llm.Provider, logger *log.Logger) *Synthesizer {
	if logger == nil {
		logger = log.New(log.Writer(), "[POLICY] ", log.LstdFlags)
	}
	return &Synthesizer{provider: provider, logger: logger, now: time.Now}
}

// Synthesize generates one policy document. An empty or missing model
// response degrades to a fixed fallback document because the result flows
// directly into user-facing display; only a transport failure is an error.
func (s *Synthesizer) Synthesize(ctx context.Context, t Type, profile CompanyProfile) (*Document, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unsupported policy type %q", t)
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: SynthesisSystemPrompt},
		{Role: llm.RoleUser, Content: SynthesisPrompt(t, profile)},
	}
	response, err := s.provider.ChatCompletion(ctx, messages, nil, "")
	if err != nil {
		return nil, fmt.Errorf("policy synthesis request: %w", err)
	}

	markdown := strings.TrimSpace(response.Content)
	if markdown == "" {
		s.logger.Printf("empty synthesis response for %s, using fallback document", t)
		markdown = fallbackMarkdown(t)
	}

	return s.build(t, profile, markdown), nil
}

func (s *Synthesizer) build(t Type, profile CompanyProfile, markdown string) *Document {
	parsed := export.ParseMarkdown(markdown)

	title := parsed.Title
	if title == "" {
		title = TypeLabels[t]
	}
	company := profile.CompanyName
	if company == "" {
		company = "Your Company"
	}

	doc := &Document{
		ID:          uuid.New().String(),
		Type:        t,
		Title:       title,
		CompanyName: company,
		Markdown:    markdown,
		Metadata: Metadata{
			Version:       "1.0",
			EffectiveDate: s.now().Format("2006-01-02"),
			Standards:     ComplianceStandards,
		},
		CreatedAt: s.now(),
	}
	for i, sec := range parsed.Sections {
		doc.Sections = append(doc.Sections, Section{
			ID:      fmt.Sprintf("sec-%02d", i+1),
			Title:   sec.Title,
			Content: strings.Join(sec.Lines, "\n"),
		})
	}
	return doc
}

func fallbackMarkdown(t Type) string {
	return fmt.Sprintf(`# %s

## Generation Incomplete

The policy document could not be generated at this time. Please try again, or provide more detail about your company so the draft can be completed.`, TypeLabels[t])
}
