package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"gotest.tools/assert"

	"github.com/kherring/docbrief/markdown"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestCreatePage(t *testing.T) {
	var path, method, auth string
	var captured map[string]interface{}
	client := New("secret-token", "db-123", notionapi.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			path = req.URL.Path
			method = req.Method
			auth = req.Header.Get("Authorization")
			body, _ := io.ReadAll(req.Body)
			json.Unmarshal(body, &captured)
			return jsonResponse(`{"object":"page","id":"page-123"}`), nil
		}),
	}))

	pageID, err := client.CreatePage(context.Background(), "Quarterly Letter", "https://example.com/letter.pdf")
	assert.NilError(t, err)
	assert.Equal(t, "page-123", pageID)

	assert.Equal(t, http.MethodPost, method)
	assert.Assert(t, strings.HasSuffix(path, "/pages"))
	assert.Equal(t, "Bearer secret-token", auth)

	parent, ok := captured["parent"].(map[string]interface{})
	assert.Assert(t, ok)
	assert.Equal(t, "db-123", parent["database_id"])

	properties, ok := captured["properties"].(map[string]interface{})
	assert.Assert(t, ok)
	title, ok := properties["Title"].(map[string]interface{})
	assert.Assert(t, ok)
	titleList, ok := title["title"].([]interface{})
	assert.Assert(t, ok)
	assert.Equal(t, 1, len(titleList))

	urlProp, ok := properties["URL"].(map[string]interface{})
	assert.Assert(t, ok)
	assert.Equal(t, "https://example.com/letter.pdf", urlProp["url"])
}

func TestCreatePageOmitsEmptyURL(t *testing.T) {
	var captured map[string]interface{}
	client := New("secret-token", "db-123", notionapi.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			json.Unmarshal(body, &captured)
			return jsonResponse(`{"object":"page","id":"page-123"}`), nil
		}),
	}))

	_, err := client.CreatePage(context.Background(), "No Source", "")
	assert.NilError(t, err)

	properties, ok := captured["properties"].(map[string]interface{})
	assert.Assert(t, ok)
	_, hasURL := properties["URL"]
	assert.Assert(t, !hasURL)
}

func TestAppendBlocksBatches(t *testing.T) {
	var childLens []int
	client := New("secret-token", "db-123", notionapi.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodPatch, req.Method)
			var body struct {
				Children []json.RawMessage `json:"children"`
			}
			json.NewDecoder(req.Body).Decode(&body)
			childLens = append(childLens, len(body.Children))
			return jsonResponse(`{"object":"list","results":[]}`), nil
		}),
	}))

	blocks := make(notionapi.Blocks, 0, 250)
	for i := 0; i < 250; i++ {
		blocks = append(blocks, notionapi.NewParagraphBlock(notionapi.Paragraph{
			RichText: []notionapi.RichText{*notionapi.NewTextRichText("x")},
		}))
	}

	err := client.AppendBlocks(context.Background(), "page-123", blocks)
	assert.NilError(t, err)
	assert.DeepEqual(t, []int{100, 100, 50}, childLens)
}

func TestPublish(t *testing.T) {
	var requests []string
	client := New("secret-token", "db-123", notionapi.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			requests = append(requests, req.Method+" "+req.URL.Path)
			if strings.HasSuffix(req.URL.Path, "/pages") {
				return jsonResponse(`{"object":"page","id":"page-abc"}`), nil
			}
			return jsonResponse(`{"object":"list","results":[]}`), nil
		}),
	}))

	content := "# Letter\n\nKey points below.\n- growth\n- risk"
	pageID, err := client.Publish(context.Background(), "Letter", "https://example.com/letter.pdf", content)
	assert.NilError(t, err)
	assert.Equal(t, "page-abc", pageID)

	// one create followed by one append
	assert.Equal(t, 2, len(requests))
	assert.Assert(t, strings.HasSuffix(requests[1], "/blocks/page-abc/children"))
}

func TestPublishEmptyContent(t *testing.T) {
	var requests int
	client := New("secret-token", "db-123", notionapi.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			requests++
			return jsonResponse(`{"object":"page","id":"page-abc"}`), nil
		}),
	}))

	pageID, err := client.Publish(context.Background(), "Empty", "", "")
	assert.NilError(t, err)
	assert.Equal(t, "page-abc", pageID)
	assert.Equal(t, 1, requests)

	// nothing to append means no children requests at all
	assert.Equal(t, 0, len(Blocks(markdown.ParseBlocks(""))))
}
