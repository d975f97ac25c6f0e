package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"jobAgent/internal/config"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []RequestLog
}

func (l *recordingLogger) LogLLMRequest(ctx context.Context, entry RequestLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, logger Logger) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	oc := openai.DefaultConfig("test-key")
	oc.BaseURL = srv.URL + "/v1"
	return NewClientWithConfig(oc, config.OpenAI{Model: "gpt-4o", MaxTokens: 100, RequestsPerMinute: 6000, TokensPerHour: 1000000}, logger)
}

func TestComplete_ToolCalls(t *testing.T) {
	var got openai.ChatCompletionRequest
	logger := &recordingLogger{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{
					Role: openai.ChatMessageRoleAssistant,
					ToolCalls: []openai.ToolCall{{
						ID:       "call_1",
						Type:     openai.ToolTypeFunction,
						Function: openai.FunctionCall{Name: ToolUploadCV, Arguments: `{"index":3}`},
					}},
				},
			}},
			Usage: openai.Usage{TotalTokens: 42},
		})
	}, logger)

	reply, err := client.Complete(context.Background(), Request{
		RunID:  "run-1",
		StepNo: 2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "my email is jane.doe@example.com"},
		},
		Tools: Tools(),
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Len(t, got.Tools, len(Tools()))
	assert.False(t, reply.Done())
	require.Len(t, reply.Calls, 1)
	idx, err := reply.Calls[0].RequireIndex()
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 42, reply.TokensUsed)

	require.Len(t, logger.entries, 1)
	entry := logger.entries[0]
	assert.Equal(t, "run-1", entry.RunID)
	assert.Equal(t, 2, entry.StepNo)
	assert.NotContains(t, entry.Prompt, "jane.doe@example.com")
	assert.Contains(t, entry.Response, ToolUploadCV)
}

func TestComplete_APIError(t *testing.T) {
	logger := &recordingLogger{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}, logger)

	_, err := client.Complete(context.Background(), Request{
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
	require.Len(t, logger.entries, 1)
	assert.Equal(t, "error", logger.entries[0].Role)
}

func TestComplete_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, Request{})
	assert.Error(t, err)
}
