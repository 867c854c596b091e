package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Fetcher retrieves feed documents over HTTP with conditional-fetch
// semantics: the stored validators are sent along and a 304 response
// short-circuits without a download.
type Fetcher struct {
	httpClient *http.Client
	parser     *Parser
	userAgent  string
	timeout    time.Duration
}

func NewFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		parser:     NewParser(),
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Run fetches and parses one feed. Transient transport failures are
// retried with exponential backoff within the fetch timeout; any final
// failure is reported as a *FetchError.
func (f *Fetcher) Run(ctx context.Context, url, etag, lastModified string) (*Result, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var resp *http.Response
	attempt := func() error {
		req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", f.userAgent)
		if etag != "" {
			req.Header.Set("If-None-Match", etag)
		}
		if lastModified != "" {
			req.Header.Set("If-Modified-Since", lastModified)
		}

		resp, err = f.httpClient.Do(req)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), timeoutCtx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return &Result{NotModified: true}, nil
	case resp.StatusCode > 299:
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	doc, err := f.parser.Run(data)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc.ETag = resp.Header.Get("ETag")
	doc.LastModified = resp.Header.Get("Last-Modified")

	return &Result{Document: doc}, nil
}
