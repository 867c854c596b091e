package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const extractorTestHTML = `
<!DOCTYPE html>
<html>
<head>
	<title>Test Article</title>
</head>
<body>
	<header>
		<h1>Site Header</h1>
		<nav>Navigation</nav>
	</header>
	<main>
		<article>
			<h1>Main Article Title</h1>
			<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
			<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
			<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
		</article>
	</main>
	<aside>
		<div>Advertisement</div>
	</aside>
	<footer>
		<p>Copyright 2024</p>
	</footer>
</body>
</html>
`

func TestContentExtractorValidPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(extractorTestHTML))
	}))
	defer server.Close()

	extractor := NewContentExtractor(&http.Client{}, "feedbox-test/1.0")
	result, err := extractor.Run(server.URL)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(result, "main content of the article") {
		t.Errorf("Expected article text in result, got: %s", result)
	}
	if strings.Contains(result, "Navigation") {
		t.Errorf("Expected navigation chrome to be stripped, got: %s", result)
	}
}

func TestContentExtractorErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewContentExtractor(&http.Client{}, "feedbox-test/1.0")
	_, err := extractor.Run(server.URL)

	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
}

func TestContentExtractorUnreachableHost(t *testing.T) {
	extractor := NewContentExtractor(&http.Client{}, "feedbox-test/1.0")
	_, err := extractor.Run("http://127.0.0.1:1/article")

	if err == nil {
		t.Fatal("Expected an error for an unreachable host")
	}
}
