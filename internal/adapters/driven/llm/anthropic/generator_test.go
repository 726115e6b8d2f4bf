package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/echopress/internal/core/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Generator) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gen, err := NewGenerator(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
	require.NoError(t, err)
	return server, gen
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"content":     []map[string]string{{"type": "text", "text": text}},
		"stop_reason": "end_turn",
	}
}

func TestNewGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewGenerator(Config{})
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
}

func TestGenerate_SendsPromptAndHeaders(t *testing.T) {
	var gotReq messagesRequest
	var gotHeaders http.Header

	_, gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(textResponse("# Generated Post\n\nBody."))
	})

	out, err := gen.Generate(context.Background(), "meeting notes text", domain.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, "# Generated Post\n\nBody.", out)

	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 4096, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Contains(t, gotReq.Messages[0].Content, "meeting notes text")
	assert.Contains(t, gotReq.Messages[0].Content, "blog post")
}

func TestGenerate_TokenBudgetPerKind(t *testing.T) {
	budgets := map[domain.ArtifactKind]int{}

	_, gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(textResponse("out"))
		// The prompt names the kind; recover it from max_tokens instead.
		for kind, budget := range maxTokensByKind {
			if budget == req.MaxTokens {
				budgets[kind] = budget
			}
		}
	})

	for _, kind := range domain.Kinds() {
		_, err := gen.Generate(context.Background(), "text", kind)
		require.NoError(t, err)
	}

	assert.Equal(t, maxTokensByKind, budgets)
}

func TestGenerate_TrimsWhitespace(t *testing.T) {
	_, gen := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(textResponse("\n\n  short post  \n"))
	})

	out, err := gen.Generate(context.Background(), "text", domain.KindXPost)
	require.NoError(t, err)
	assert.Equal(t, "short post", out)
}

func TestGenerate_APIError(t *testing.T) {
	_, gen := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "rate_limit_error", "message": "overloaded"},
		})
	})

	_, err := gen.Generate(context.Background(), "text", domain.KindBlog)
	assert.ErrorContains(t, err, "overloaded")
}

func TestGenerate_EmptyContent(t *testing.T) {
	_, gen := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	})

	_, err := gen.Generate(context.Background(), "text", domain.KindLinkedIn)
	assert.ErrorContains(t, err, "no response content")
}

func TestGenerate_UnknownKind(t *testing.T) {
	_, gen := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(textResponse("out"))
	})

	_, err := gen.Generate(context.Background(), "text", domain.ArtifactKind("podcast"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type stubPromptStore struct {
	prompts map[string]string
}

func (s *stubPromptStore) Load(name string) (string, error) {
	if p, ok := s.prompts[name]; ok {
		return p, nil
	}
	return "", domain.ErrNotFound
}

func (s *stubPromptStore) Reload() {}

func TestGenerate_CustomPromptStore(t *testing.T) {
	var gotPrompt string
	_, gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Messages[0].Content
		json.NewEncoder(w).Encode(textResponse("out"))
	})

	gen.SetPromptStore(&stubPromptStore{prompts: map[string]string{
		"blog": "Custom template: %s",
	}})

	_, err := gen.Generate(context.Background(), "the notes", domain.KindBlog)
	require.NoError(t, err)
	assert.Equal(t, "Custom template: the notes", gotPrompt)
}

func TestModelName(t *testing.T) {
	gen, err := NewGenerator(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gen.ModelName())
}
