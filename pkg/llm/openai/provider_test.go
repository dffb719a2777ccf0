package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"growth-engine-be/pkg/llm"
)

func TestIsConfigured(t *testing.T) {
	cases := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"empty key", "", false},
		{"placeholder key", "sk-proj-PLACEHOLDER", false},
		{"wrong prefix", "api-key-123", false},
		{"valid key", "sk-proj-abc123", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewOpenAIProvider(tc.apiKey, "", "", 0, 0)
			assert.Equal(t, tc.want, p.IsConfigured())
		})
	}
}

func TestChatNotConfigured(t *testing.T) {
	p := NewOpenAIProvider("", "", "", 0, 0)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestChatSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4-turbo-preview","choices":[{"message":{"content":"שאלה 2"}}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "", 0, 0)
	out, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.NoError(t, err)
	assert.Equal(t, "שאלה 2", out)
}

type capturedUsage struct {
	message string
	details map[string]interface{}
}

func (c *capturedUsage) Info(module, message string, details map[string]interface{}) {
	c.message = message
	c.details = details
}

func TestChatLogsTokenUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4-turbo-preview","choices":[{"message":{"content":"שאלה 2"}}],"usage":{"prompt_tokens":120,"completion_tokens":42,"total_tokens":162}}`))
	}))
	defer srv.Close()

	usage := &capturedUsage{}
	p := NewOpenAIProvider("sk-test", srv.URL, "", 0, 0)
	p.SetUsageLogger(usage)

	_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.NoError(t, err)

	assert.Equal(t, "chat completion", usage.message)
	assert.Equal(t, "gpt-4-turbo-preview", usage.details["model"])
	assert.Equal(t, 120, usage.details["prompt_tokens"])
	assert.Equal(t, 42, usage.details["completion_tokens"])
	assert.Equal(t, 162, usage.details["total_tokens"])
}

func TestChatErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, llm.ErrRateLimited},
		{"bad key", http.StatusUnauthorized, llm.ErrAuth},
		{"forbidden", http.StatusForbidden, llm.ErrAuth},
		{"upstream down", http.StatusInternalServerError, llm.ErrService},
		{"bad gateway", http.StatusBadGateway, llm.ErrService},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			}))
			defer srv.Close()

			p := NewOpenAIProvider("sk-test", srv.URL, "", 0, 0)
			_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL, "", 0, 0)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: llm.RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, llm.ErrService)
}
