package www

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
)

// FetcherFunc retrieves a document. The second return is the URL the
// response actually came from, after any redirects.
type FetcherFunc func(ctx context.Context, url string) ([]byte, string, error)

func doFetch(ctx context.Context, req *http.Request) ([]byte, string, error) {
	var httpClient http.Client

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}

	finalURL := res.Request.URL.String()
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode > 299 {
		return nil, finalURL, fmt.Errorf("response failed with status code: %d and\nbody: %s", res.StatusCode, body)
	}
	if err != nil {
		return nil, finalURL, err
	}
	return body, finalURL, nil
}

func Fetcher(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	return doFetch(ctx, req)
}

func FetcherSpoof(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	// spoof user agent to work around bot detection
	req.Header["User-Agent"] = []string{"User-Agent: Mozilla/5.0 (X11; CrOS x86_64 14541.0.0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"}
	return doFetch(ctx, req)
}

func FetcherCurl(ctx context.Context, url string) ([]byte, string, error) {
	// Use os/exec to run curl
	cmd := exec.CommandContext(ctx, "curl", "--fail", "--location", url)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, "", fmt.Errorf("failed to start curl: %w", err)
	}
	output, err := io.ReadAll(stdout)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read curl output: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return nil, "", fmt.Errorf("curl failed: %w", err)
	}
	// curl resolves redirects itself, so the request URL is all we have
	return output, url, nil
}

func FetcherCombined(ctx context.Context, url string) ([]byte, string, error) {
	fetchers := []FetcherFunc{FetcherSpoof, Fetcher, FetcherCurl}
	var err error
	for _, fetcher := range fetchers {
		var bytes []byte
		var finalURL string
		bytes, finalURL, err = fetcher(ctx, url)
		if err == nil {
			return bytes, finalURL, nil
		}
	}
	return nil, "", err
}
