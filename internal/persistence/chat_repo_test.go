package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixbrock/gradeloop/internal/app"
)

func testRepo(url string) OpenAIRepo {
	return OpenAIRepo{
		BaseHeaders: []string{
			"Content-Type:application/json",
			"Authorization: Bearer test-key"},
		BaseUrl:     url,
		Temperature: 0.6,
		MaxTokens:   4000,
	}
}

func TestCompleteSendsOneChatRequest(t *testing.T) {
	var got chatCompletionProto
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "cmpl-1", "choices": [{"message": {"role": "assistant", "content": "SCORES:\nA: 80"}}]}`))
	}))
	defer server.Close()

	reply, err := testRepo(server.URL).Complete(context.Background(), app.CompletionProto{
		System: "you are an evaluator",
		Prompt: "write the script",
		Model:  "gpt-4-turbo",
	})

	require.NoError(t, err)
	assert.Equal(t, "SCORES:\nA: 80", reply)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "gpt-4-turbo", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "you are an evaluator", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "write the script", got.Messages[1].Content)
	assert.InDelta(t, 0.6, got.Temperature, 0.001)
	assert.Equal(t, 4000, got.MaxTokens)
}

func TestCompleteUnexpectedStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := testRepo(server.URL).Complete(context.Background(), app.CompletionProto{Model: "gpt-4-turbo"})

	require.Error(t, err)
	var completionErr *app.CompletionError
	assert.True(t, errors.As(err, &completionErr))
}

func TestCompleteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testRepo(server.URL).Complete(context.Background(), app.CompletionProto{Model: "gpt-4-turbo"})

	require.Error(t, err)
	var completionErr *app.CompletionError
	assert.True(t, errors.As(err, &completionErr))
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "cmpl-2", "choices": []}`))
	}))
	defer server.Close()

	_, err := testRepo(server.URL).Complete(context.Background(), app.CompletionProto{Model: "gpt-4-turbo"})

	require.Error(t, err)
	var completionErr *app.CompletionError
	assert.True(t, errors.As(err, &completionErr))
}
