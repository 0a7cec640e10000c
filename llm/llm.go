// Package llm is a thin client for the OpenAI Responses API, shaped for
// single-shot document summarization requests.
package llm

import (
	"context"
	"errors"
	"net/http"
)

// Params selects the model and sampling behavior for every request made
// through a client.
type Params struct {
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Llm is the calling surface the summarizers depend on, so tests can
// substitute a canned implementation.
type Llm interface {
	NewRequestBuilder() *RequestBuilder
	Respond(ctx context.Context, rb *RequestBuilder, stats *Usage) (string, error)
}

// Client talks to a Responses-compatible endpoint over plain HTTP.
type Client struct {
	BaseURL    string       // full URL of the responses endpoint
	HTTPClient *http.Client // nil means http.DefaultClient
	params     Params
	apiKey     string
}

const defaultBaseURL = "https://api.openai.com/v1/responses"

func New(apiKey string, params Params) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	return &Client{
		BaseURL: defaultBaseURL,
		params:  params,
		apiKey:  apiKey,
	}, nil
}
