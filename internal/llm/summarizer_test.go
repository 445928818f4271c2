package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	resp *CompletionResponse
	err  error
	got  *CompletionRequest
}

func (f *fakeClient) Complete(_ context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func (f *fakeClient) Name() string { return "fake" }

func TestPolicySummarizer(t *testing.T) {
	fc := &fakeClient{resp: &CompletionResponse{Content: "\n- Apply two days early.\n"}}
	s := NewPolicySummarizer(fc, "small-model", time.Second)

	out, err := s.Summarize(context.Background(), "leave", []string{"Leave must be applied 2 days in advance."})
	require.NoError(t, err)
	assert.Equal(t, "- Apply two days early.", out)

	require.NotNil(t, fc.got)
	assert.Equal(t, "small-model", fc.got.Model)
	assert.Equal(t, summarizerSystemPrompt, fc.got.System)
	require.Len(t, fc.got.Messages, 1)
	assert.Contains(t, fc.got.Messages[0].Content, "Policy topic: leave")
	assert.Contains(t, fc.got.Messages[0].Content, "- Leave must be applied 2 days in advance.")
}

func TestPolicySummarizerError(t *testing.T) {
	s := NewPolicySummarizer(&fakeClient{err: errors.New("rate limited")}, "", 0)
	_, err := s.Summarize(context.Background(), "travel", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summarize travel policy")

	var nilSummarizer *PolicySummarizer
	_, err = nilSummarizer.Summarize(context.Background(), "leave", nil)
	assert.Error(t, err)
}

func TestFromKeys(t *testing.T) {
	c, err := FromKeys(ProviderAnthropic, "", "", "")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = FromKeys(ProviderAnthropic, "", "sk-openai", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = FromKeys(ProviderOpenAI, "sk-ant", "sk-openai", "")
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Name())

	c, err = FromKeys(ProviderAnthropic, "sk-ant", "sk-openai", "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", c.Name())
}

func TestClientsRequireKey(t *testing.T) {
	_, err := NewAnthropicClient("")
	assert.Error(t, err)

	_, err = NewOpenAIClient("")
	assert.Error(t, err)

	_, err = NewOpenAIClientWithBaseURL("", "http://localhost:8000/v1")
	assert.Error(t, err)
}

func TestFromKeysUsesOpenAIBaseURL(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","model":"local-model",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"- Apply 2 days ahead."},"finish_reason":"stop"}],` +
			`"usage":{"prompt_tokens":12,"completion_tokens":6,"total_tokens":18}}`))
	}))
	defer srv.Close()

	c, err := FromKeys(ProviderOpenAI, "", "sk-local", srv.URL+"/v1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "openai", c.Name())

	resp, err := c.Complete(context.Background(), &CompletionRequest{
		Messages: []ChatMessage{{Role: "user", Content: "leave policy"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-local", gotAuth)
	assert.Equal(t, "- Apply 2 days ahead.", resp.Content)
	assert.Equal(t, "local-model", resp.Model)
	assert.Equal(t, 12, resp.TokensIn)
}
