package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/kherring/docbrief/llm"
	"github.com/kherring/docbrief/markdown"
	"github.com/kherring/docbrief/www"
)

type summarizeFunc func(ctx context.Context, url string, stats *llm.Usage) (string, error)

// newSummarizer returns the default summarizer: the model reads the URL
// itself, nothing is fetched locally.
func newSummarizer(llmClient llm.Llm, params LlmParams) summarizeFunc {
	return func(ctx context.Context, url string, stats *llm.Usage) (string, error) {
		rb := llmClient.NewRequestBuilder().
			AddMessage(llm.RoleUser).
			AddText(params.URLPrompt).
			AddFileURL(url)

		output, err := llmClient.Respond(ctx, rb, stats)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(output), nil
	}
}

// newDocumentSummarizer fetches the document locally and sends the bytes as
// an attachment, for hosts the model's own fetcher cannot reach.
func newDocumentSummarizer(llmClient llm.Llm, fetcher www.FetcherFunc, params LlmParams) summarizeFunc {
	return func(ctx context.Context, url string, stats *llm.Usage) (string, error) {
		body, finalURL, err := fetcher(ctx, url)
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s: %w", url, err)
		}

		rb := llmClient.NewRequestBuilder().
			AddMessage(llm.RoleUser).
			AddText(params.DocumentPrompt).
			AddDocument(documentMime(body), documentName(finalURL), body)

		output, err := llmClient.Respond(ctx, rb, stats)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(output), nil
	}
}

// newExtractSummarizer converts fetched HTML straight to markdown without
// calling a model.
func newExtractSummarizer(fetcher www.FetcherFunc) summarizeFunc {
	return func(ctx context.Context, url string, _ *llm.Usage) (string, error) {
		body, _, err := fetcher(ctx, url)
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s: %w", url, err)
		}

		// The block parser understands only ATX headings and fenced code.
		converter := md.NewConverter("", true, &md.Options{
			HeadingStyle:   "atx",
			CodeBlockStyle: "fenced",
		})
		text, err := converter.ConvertString(string(body))
		if err != nil {
			return "", fmt.Errorf("failed to convert %s: %w", url, err)
		}
		text = strings.TrimSpace(text)

		// A converted page does not always lead with its title.
		if _, ok := markdown.Title(text); !ok {
			if title := www.HtmlTitle(body); title != "" {
				text = "# " + title + "\n\n" + text
			}
		}
		return text, nil
	}
}

// newPipelineSummarizer picks the summarizer the flags ask for and builds
// whatever clients it needs.
func newPipelineSummarizer(spec specification, fetchMode bool, extractMode bool) (summarizeFunc, error) {
	if extractMode {
		return newExtractSummarizer(www.FetcherCombined), nil
	}

	params := summarizerParams(spec.Model)
	client, err := llm.New(spec.OpenAIKey, params.Params)
	if err != nil {
		return nil, err
	}
	if fetchMode {
		return newDocumentSummarizer(client, www.FetcherCombined, params), nil
	}
	return newSummarizer(client, params), nil
}

const errorSummaryPrefix = "Error summarizing "

// errorSummary is the placeholder recorded for a url whose summarize call
// failed, so a batch run keeps going and the failure stays visible in the
// output.
func errorSummary(url string, err error) string {
	return fmt.Sprintf("%s%s: %v", errorSummaryPrefix, url, err)
}

// isErrorSummary reports whether summary is such a placeholder. Placeholders
// land in the summaries file but are never cached or published.
func isErrorSummary(summary string) bool {
	return strings.HasPrefix(summary, errorSummaryPrefix)
}

func documentMime(body []byte) string {
	mime := http.DetectContentType(body)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime
}

// documentName picks a filename for the attachment from the url path.
func documentName(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if base := path.Base(parsed.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return "document"
}
