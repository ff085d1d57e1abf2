package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "```json\n{\"title\":\"Go\"}\n```"},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	})

	resp, err := p.Generate(context.Background(), Request{
		System: "You are a curriculum designer.",
		Messages: []Message{
			{Role: RoleUser, Content: "hello"},
			{Role: RoleAssistant, Content: "hi"},
			{Role: RoleUser, Content: "roadmap for Go"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "```json\n{\"title\":\"Go\"}\n```" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 65 || resp.StopReason != "end" {
		t.Fatalf("unexpected usage/stop: %+v %q", resp.Usage, resp.StopReason)
	}
	if len(got.Messages) != 4 || got.Messages[0].Role != openai.ChatMessageRoleSystem || got.Messages[2].Role != openai.ChatMessageRoleAssistant {
		t.Fatalf("unexpected request messages: %+v", got.Messages)
	}
}

func TestOpenAIProvider_ServerErrorIsUnavailable(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	_, err := p.Generate(context.Background(), Prompt("", "x"))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	})

	_, err := p.Generate(context.Background(), Prompt("", "x"))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("rate limit must still read as backend unavailable")
	}
}

func TestOpenAIProvider_EmptyChoices(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","model":"gpt-4o-mini","choices":[]}`))
	})

	_, err := p.Generate(context.Background(), Prompt("", "x"))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Fatalf("friendly name not resolved: %q", got)
	}
	if got := resolveModel("gemini-1.5-flash", geminiModels); got != "gemini-1.5-flash" {
		t.Fatalf("direct id not passed through: %q", got)
	}
}
