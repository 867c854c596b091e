package feed

import "fmt"

// Document is a parsed feed with its normalized entries, as delivered
// by the fetch collaborator.
type Document struct {
	Title        string
	Link         string
	Description  string
	ETag         string // cache validator reported by the source
	LastModified string // cache validator reported by the source
	Entries      []Item
}

// Item is one normalized feed item. Defaults are applied once at the
// parsing boundary: missing display fields get placeholder strings,
// the identity falls back from the declared id to the link to the
// title.
type Item struct {
	GUID            string
	Title           string
	Link            string
	Description     string
	UpdatedAt       int64 // unix seconds, published time when available
	EnclosureURL    string
	EnclosureLength int64
	EnclosureType   string
}

// Result is the outcome of a successful fetch: either the source
// reported no change relative to the stored validators, or a parsed
// document.
type Result struct {
	NotModified bool
	Document    *Document
}

// FetchError reports a failed fetch of a single feed, covering
// transport, HTTP status and parse failures. It is recoverable:
// refreshes of other feeds continue.
type FetchError struct {
	URL        string
	StatusCode int // zero for transport and parse failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch of %s failed with status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch of %s failed: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
