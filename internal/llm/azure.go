package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/policypilot/policypilot/config"
)

// AzureClient implements Provider against the Azure OpenAI chat
// completions API. The deployment name selects the model; credentials and
// endpoint come from configuration.
type AzureClient struct {
	apiKey     string
	endpoint   string
	apiVersion string
	deployment string
	httpClient *http.Client
}

// NewAzureClient creates a client from LLM configuration.
func NewAzureClient(cfg config.LLMConfig) *AzureClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &AzureClient{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiVersion: cfg.APIVersion,
		deployment: cfg.Deployment,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Messages   []Message `json:"messages"`
	Tools      []Tool    `json:"tools,omitempty"`
	ToolChoice string    `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatCompletion implements Provider.
func (c *AzureClient) ChatCompletion(ctx context.Context, messages []Message, tools []Tool, toolChoice string) (Message, error) {
	requestBody := chatRequest{
		Messages:   messages,
		Tools:      tools,
		ToolChoice: toolChoice,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Message{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Message{}, fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(b))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Message{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if completion.Error != nil {
		return Message{}, fmt.Errorf("completion API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return Message{}, fmt.Errorf("no choices in response")
	}

	return completion.Choices[0].Message, nil
}
