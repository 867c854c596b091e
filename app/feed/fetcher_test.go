package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const fetcherTestRSS = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Test Item</title>
      <link>https://example.com/item1</link>
      <guid>item-1</guid>
    </item>
  </channel>
</rss>`

func newTestFetcher() *Fetcher {
	return NewFetcher(&http.Client{}, "feedbox-test/1.0", 5*time.Second)
}

func TestFetcherSendsConditionalHeaders(t *testing.T) {
	var gotEtag, gotModified, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEtag = r.Header.Get("If-None-Match")
		gotModified = r.Header.Get("If-Modified-Since")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	result, err := newTestFetcher().Run(context.Background(),
		server.URL, `"etag-1"`, "Mon, 03 Jul 2023 10:00:00 GMT")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.NotModified {
		t.Error("Expected a not-modified result for a 304 response")
	}
	if result.Document != nil {
		t.Error("Expected no document for a 304 response")
	}
	if gotEtag != `"etag-1"` {
		t.Errorf("Expected If-None-Match to carry the etag, got: %s", gotEtag)
	}
	if gotModified != "Mon, 03 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected If-Modified-Since to carry the validator, got: %s", gotModified)
	}
	if gotAgent != "feedbox-test/1.0" {
		t.Errorf("Expected the configured user agent, got: %s", gotAgent)
	}
}

func TestFetcherOmitsEmptyValidators(t *testing.T) {
	var hadEtag, hadModified bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadEtag = r.Header["If-None-Match"]
		_, hadModified = r.Header["If-Modified-Since"]
		w.Write([]byte(fetcherTestRSS))
	}))
	defer server.Close()

	_, err := newTestFetcher().Run(context.Background(), server.URL, "", "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if hadEtag {
		t.Error("Expected no If-None-Match header without a stored etag")
	}
	if hadModified {
		t.Error("Expected no If-Modified-Since header without a stored validator")
	}
}

func TestFetcherCapturesValidators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"etag-2"`)
		w.Header().Set("Last-Modified", "Tue, 04 Jul 2023 10:00:00 GMT")
		w.Write([]byte(fetcherTestRSS))
	}))
	defer server.Close()

	result, err := newTestFetcher().Run(context.Background(), server.URL, "", "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.NotModified {
		t.Fatal("Expected a document result for a 200 response")
	}
	if result.Document.ETag != `"etag-2"` {
		t.Errorf("Expected the response etag, got: %s", result.Document.ETag)
	}
	if result.Document.LastModified != "Tue, 04 Jul 2023 10:00:00 GMT" {
		t.Errorf("Expected the response last-modified, got: %s", result.Document.LastModified)
	}
	if len(result.Document.Entries) != 1 {
		t.Errorf("Expected 1 entry, got: %d", len(result.Document.Entries))
	}
}

func TestFetcherErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestFetcher().Run(context.Background(), server.URL, "", "")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a *FetchError, got: %v", err)
	}
	if fetchErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got: %d", fetchErr.StatusCode)
	}
	if fetchErr.URL != server.URL {
		t.Errorf("Expected the feed url in the error, got: %s", fetchErr.URL)
	}
}

func TestFetcherInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer server.Close()

	_, err := newTestFetcher().Run(context.Background(), server.URL, "", "")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a *FetchError, got: %v", err)
	}
	if fetchErr.StatusCode != 0 {
		t.Errorf("Expected zero status for a parse failure, got: %d", fetchErr.StatusCode)
	}
}

func TestFetcherUnreachableHost(t *testing.T) {
	fetcher := NewFetcher(&http.Client{}, "feedbox-test/1.0", 2*time.Second)

	_, err := fetcher.Run(context.Background(), "http://127.0.0.1:1/feed.xml", "", "")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected a *FetchError, got: %v", err)
	}
}
