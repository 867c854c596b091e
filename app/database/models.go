package database

// Feed represents a tracked syndication source.
type Feed struct {
	ID           int64
	URL          string
	ETag         string // cache validator from the last successful fetch
	LastModified string // cache validator from the last successful fetch
	RefreshedAt  int64  // unix seconds of the last refresh that produced data
	UpdatedAt    int64  // max updated_at across the feed's entries
	Title        string
	Description  string
	Link         string
	Category     string
	Priority     int // lower value sorts first
	IsActive     bool
}

// Entry represents one published item belonging to a feed.
type Entry struct {
	ID              int64
	GUID            string
	FeedID          int64
	RefreshedAt     int64
	UpdatedAt       int64
	Title           string
	Description     string
	Link            string
	EnclosureURL    string
	EnclosureLength int64
	EnclosureType   string
	Progress        float64 // consumption state in [0, 1], 0 = unread
	IsImportant     bool
}
