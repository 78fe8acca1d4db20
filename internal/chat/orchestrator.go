package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/policypilot/policypilot/internal/llm"
	"github.com/policypilot/policypilot/internal/policy"
)

// maxIterations caps the request/response loop per user turn so a model
// that keeps requesting tools cannot run up cost and latency unbounded.
const maxIterations = 3

const fallbackReply = "I wasn't able to complete that request within this turn. Could you rephrase it or provide more detail?"

const emptyReply = "I could not generate a response."

// Fetcher resolves a fetch_url tool call to a textual digest. Crawl
// failures come back as readable error text, never as an error value, so
// the model can react to them inside the conversation.
type Fetcher interface {
	Digest(ctx context.Context, rawURL string) string
}

// Synthesizer resolves a generate_policy tool call to a policy artifact.
type Synthesizer interface {
	Synthesize(ctx context.Context, t policy.Type, profile policy.CompanyProfile) (*policy.Document, error)
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text     string
	Artifact *policy.Document
}

// Service owns the bounded request/response loop with the LLM for one
// turn at a time. The in-progress message list is exclusively owned by the
// running turn; concurrent turns each get their own list.
type Service struct {
	provider    llm.Provider
	fetcher     Fetcher
	synthesizer Synthesizer
	logger      *log.Logger
}

// NewService wires the orchestrator.
func NewService(provider llm.Provider, fetcher Fetcher, synthesizer Synthesizer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	}
	return &Service{provider: provider, fetcher: fetcher, synthesizer: synthesizer, logger: logger}
}

// Advance runs one user turn: the new message plus prior history go
// through at most maxIterations completion requests, dispatching any tool
// calls sequentially in the order received. A generate_policy call returns
// immediately with the artifact; fetch_url results feed back into the loop.
func (s *Service) Advance(ctx context.Context, message string, history []llm.Message) (Reply, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: policy.SystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	for iteration := 0; iteration < maxIterations; iteration++ {
		response, err := s.provider.ChatCompletion(ctx, messages, Catalog(), "auto")
		if err != nil {
			return Reply{}, fmt.Errorf("chat completion: %w", err)
		}

		if len(response.ToolCalls) == 0 {
			text := response.Content
			if text == "" {
				text = emptyReply
			}
			return Reply{Text: text}, nil
		}

		// The assistant turn is appended verbatim, tool-call list included,
		// so each tool result below stays adjacent to its request.
		messages = append(messages, response)

		for _, call := range response.ToolCalls {
			result, artifact, err := s.dispatch(ctx, call)
			if err != nil {
				return Reply{}, err
			}
			if artifact != nil {
				// Once a document is produced, further tool-chaining in this
				// turn is not useful to the user.
				return Reply{
					Text:     synthesisReply(artifact),
					Artifact: artifact,
				}, nil
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	s.logger.Printf("turn exhausted %d iterations without a terminal reply", maxIterations)
	return Reply{Text: fallbackReply}, nil
}

// dispatch resolves one tool call. Argument parse failures and unknown
// tool names degrade to error-text tool results; only synthesis transport
// failures abort the turn.
func (s *Service) dispatch(ctx context.Context, call llm.ToolCall) (string, *policy.Document, error) {
	name := ToolName(call.Function.Name)
	switch name {
	case ToolGeneratePolicy:
		var args generatePolicyArgs
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			toolDispatches.WithLabelValues(string(name), "bad_arguments").Inc()
			return fmt.Sprintf("Error: invalid arguments for %s: %v", call.Function.Name, err), nil, nil
		}
		policyType := policy.Type(args.PolicyType)
		if !policyType.Valid() {
			toolDispatches.WithLabelValues(string(name), "bad_arguments").Inc()
			return fmt.Sprintf("Error: unsupported policy type %q", args.PolicyType), nil, nil
		}
		profile := policy.CompanyProfile{
			CompanyName:    args.CompanyName,
			Industry:       args.Industry,
			CompanySize:    args.CompanySize,
			AdditionalInfo: args.AdditionalContext,
		}
		doc, err := s.synthesizer.Synthesize(ctx, policyType, profile)
		if err != nil {
			toolDispatches.WithLabelValues(string(name), "error").Inc()
			return "", nil, fmt.Errorf("generate policy: %w", err)
		}
		toolDispatches.WithLabelValues(string(name), "ok").Inc()
		return "", doc, nil

	case ToolFetchURL:
		var args fetchURLArgs
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			toolDispatches.WithLabelValues(string(name), "bad_arguments").Inc()
			return fmt.Sprintf("Error: invalid arguments for %s: %v", call.Function.Name, err), nil, nil
		}
		toolDispatches.WithLabelValues(string(name), "ok").Inc()
		return s.fetcher.Digest(ctx, args.URL), nil, nil

	default:
		s.logger.Printf("model requested unknown tool %q", call.Function.Name)
		toolDispatches.WithLabelValues("unknown", "skipped").Inc()
		return fmt.Sprintf("Error: unknown tool %q", call.Function.Name), nil, nil
	}
}

func synthesisReply(doc *policy.Document) string {
	return fmt.Sprintf("I've generated your %s for %s. You can see it in the preview panel on the right. "+
		"Feel free to ask for any modifications or download the PDF when you're satisfied.",
		policy.TypeLabels[doc.Type], doc.CompanyName)
}
