package server

import (
	"github.com/policypilot/policypilot/internal/llm"
	"github.com/policypilot/policypilot/internal/policy"
)

// ChatRequest is one user turn: the new message plus the prior history,
// excluding any synthetic welcome turns the UI may show.
type ChatRequest struct {
	Message string        `json:"message"`
	History []llm.Message `json:"history"`
}

// ChatResponse carries the reply and, when a document was synthesized this
// turn, the policy artifact for the preview panel.
type ChatResponse struct {
	Response string           `json:"response"`
	Policy   *policy.Document `json:"policy,omitempty"`
}

// ExportRequest accepts either raw markdown or a structured policy
// artifact to render.
type ExportRequest struct {
	Markdown string           `json:"markdown,omitempty"`
	Policy   *policy.Document `json:"policy,omitempty"`
}
