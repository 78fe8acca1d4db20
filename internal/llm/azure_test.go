package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/policypilot/policypilot/config"
)

func TestAzureClientChatCompletion(t *testing.T) {
	var gotPath, gotKey string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		gotKey = r.Header.Get("api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{
						{"id": "call_1", "type": "function", "function": map[string]any{
							"name":      "fetch_url",
							"arguments": `{"url":"https://example.com"}`,
						}},
					},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewAzureClient(config.LLMConfig{
		APIKey:     "secret",
		Endpoint:   srv.URL,
		APIVersion: "2024-12-01-preview",
		Deployment: "gpt-5.1",
		Timeout:    5 * time.Second,
	})

	msgs := []Message{{Role: RoleUser, Content: "fetch my site"}}
	tools := []Tool{{Type: "function", Function: FunctionDef{Name: "fetch_url"}}}
	out, err := client.ChatCompletion(context.Background(), msgs, tools, "auto")
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}

	if !strings.Contains(gotPath, "/openai/deployments/gpt-5.1/chat/completions") {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotPath, "api-version=2024-12-01-preview") {
		t.Errorf("missing api-version in path: %s", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("api-key header: got %q", gotKey)
	}
	if gotBody.ToolChoice != "auto" || len(gotBody.Tools) != 1 {
		t.Errorf("tool catalog not forwarded: %+v", gotBody)
	}
	if len(out.ToolCalls) != 1 || out.ToolCalls[0].Function.Name != "fetch_url" {
		t.Fatalf("tool calls not decoded: %+v", out)
	}
}

func TestAzureClientChatCompletionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewAzureClient(config.LLMConfig{APIKey: "k", Endpoint: srv.URL})
	_, err := client.ChatCompletion(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil, "")
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestAzureClientChatCompletionNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewAzureClient(config.LLMConfig{APIKey: "k", Endpoint: srv.URL})
	_, err := client.ChatCompletion(context.Background(), nil, nil, "")
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected no choices error, got %v", err)
	}
}
