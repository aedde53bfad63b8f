package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixbrock/gradeloop/internal/app"
)

// OpenAIRepo sends one chat completion request per Complete call against
// the chat completions endpoint. No retry, no caching, no state between
// calls; the caller owns pacing between requests.
type OpenAIRepo struct {
	BaseHeaders []string
	BaseUrl     string
	Temperature float64
	MaxTokens   int
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionProto struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatCompletion struct {
	Id      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
}

func (r OpenAIRepo) Complete(ctx context.Context, proto app.CompletionProto) (string, error) {
	body, err := json.Marshal(chatCompletionProto{
		Model: proto.Model,
		Messages: []chatMessage{
			{Role: "system", Content: proto.System},
			{Role: "user", Content: proto.Prompt},
		},
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	})

	if err != nil {
		return "", &app.CompletionError{Cause: err}
	}

	url := fmt.Sprintf("%s/chat/completions", r.BaseUrl)
	completion, err := request[chatCompletion](ctx, reqConfig{Method: "POST", Url: url, Headers: r.BaseHeaders, Body: body}, 200)

	if err != nil {
		return "", &app.CompletionError{Cause: err}
	}

	if len(completion.Choices) == 0 {
		return "", &app.CompletionError{Cause: errors.New("unexpected completion choices state error")}
	}

	return completion.Choices[0].Message.Content, nil
}
