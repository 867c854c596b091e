package feed

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor fetches the page behind an entry link and reduces
// it to readable text.
type ContentExtractor struct {
	httpClient *http.Client
	userAgent  string
}

func NewContentExtractor(httpClient *http.Client, userAgent string) *ContentExtractor {
	return &ContentExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Run downloads the linked page and returns its extracted text
// content.
func (e *ContentExtractor) Run(link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid entry link: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	if article.TextContent == "" {
		return "", fmt.Errorf("no content extracted from %s", link)
	}

	slog.Debug("Content extracted successfully",
		"link", link,
		"title", article.Title,
		"content_length", len(article.TextContent))

	return article.TextContent, nil
}
