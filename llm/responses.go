package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleDeveloper Role = "developer"
)

// Mime types accepted by AddDocument.
const (
	MimePDF  = "application/pdf"
	MimeHTML = "text/html"
)

// Response statuses reported by the API.
const (
	StatusCompleted  = "completed"
	StatusIncomplete = "incomplete"
	StatusFailed     = "failed"
)

// Response carries everything the API returned for one request. Output is
// the concatenated text of all message items.
type Response struct {
	ID     string
	Model  string
	Status string
	Usage  Usage
	Output string
}

type request struct {
	Model           string      `json:"model"`
	Input           []inputItem `json:"input"`
	Temperature     float64     `json:"temperature,omitempty"`
	MaxOutputTokens int         `json:"max_output_tokens,omitempty"`
}

type inputItem struct {
	Type    string        `json:"type"`
	Role    string        `json:"role,omitempty"`
	Content []contentPart `json:"content,omitempty"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	FileURL  string `json:"file_url,omitempty"`
	Filename string `json:"filename,omitempty"`
	FileData string `json:"file_data,omitempty"`
}

type apiResponse struct {
	ID     string       `json:"id"`
	Model  string       `json:"model"`
	Status string       `json:"status"`
	Output []outputItem `json:"output"`
	Usage  *apiUsage    `json:"usage,omitempty"`
	Error  *apiError    `json:"error,omitempty"`
}

type outputItem struct {
	Type    string          `json:"type"`
	Content []outputContent `json:"content,omitempty"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type apiUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RequestBuilder assembles the input items for one request. Errors are
// deferred: they surface when the request is sent.
type RequestBuilder struct {
	items []inputItem
	err   error
}

func (c *Client) NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

func (rb *RequestBuilder) AddMessage(role Role) *RequestBuilder {
	rb.items = append(rb.items, inputItem{
		Type:    "message",
		Role:    string(role),
		Content: []contentPart{},
	})
	return rb
}

func (rb *RequestBuilder) AddText(text string) *RequestBuilder {
	return rb.addPart(contentPart{Type: "input_text", Text: text})
}

// AddFileURL attaches a remote document by URL; the service fetches it.
func (rb *RequestBuilder) AddFileURL(url string) *RequestBuilder {
	return rb.addPart(contentPart{Type: "input_file", FileURL: url})
}

// AddDocument attaches document bytes inline as a base64 data URL.
func (rb *RequestBuilder) AddDocument(mime string, name string, content []byte) *RequestBuilder {
	return rb.addPart(contentPart{
		Type:     "input_file",
		Filename: name,
		FileData: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(content)),
	})
}

func (rb *RequestBuilder) addPart(part contentPart) *RequestBuilder {
	if len(rb.items) == 0 {
		rb.err = fmt.Errorf("no message to attach %s content to", part.Type)
		return rb
	}
	last := &rb.items[len(rb.items)-1].Content
	*last = append(*last, part)
	return rb
}

// Respond sends the request and returns the output text. When stats is
// non-nil it receives the token usage for this call.
func (c *Client) Respond(ctx context.Context, rb *RequestBuilder, stats *Usage) (string, error) {
	if rb.err != nil {
		return "", rb.err
	}

	response, err := c.Send(ctx, rb)
	if err != nil {
		return "", err
	}

	if stats != nil {
		*stats = response.Usage
	}

	return response.Output, nil
}

// Send sends the request and returns the full response.
func (c *Client) Send(ctx context.Context, rb *RequestBuilder) (Response, error) {
	var response Response

	if rb.err != nil {
		return response, rb.err
	}

	body, err := json.Marshal(request{
		Model:           c.params.Model,
		Input:           rb.items,
		Temperature:     c.params.Temperature,
		MaxOutputTokens: c.params.MaxOutputTokens,
	})
	if err != nil {
		return response, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return response, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("responses request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(res.Body)
		return response, fmt.Errorf("responses request failed with status %d: %s", res.StatusCode, errBody)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(res.Body).Decode(&apiResp); err != nil {
		return response, fmt.Errorf("failed to decode response: %w", err)
	}
	if apiResp.Error != nil {
		return response, fmt.Errorf("model request failed: %s", apiResp.Error.Message)
	}

	response.ID = apiResp.ID
	response.Model = apiResp.Model
	response.Status = apiResp.Status
	if apiResp.Usage != nil {
		response.Usage.InputTokens = apiResp.Usage.InputTokens
		response.Usage.OutputTokens = apiResp.Usage.OutputTokens
	}

	ret := ""
	for _, item := range apiResp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Type == "output_text" {
				ret += content.Text
			}
		}
	}
	response.Output = ret

	return response, nil
}
