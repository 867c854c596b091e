package database

type FeedRepository interface {
	AddFeed(url, category string, priority int) (int64, error)
	RemoveFeed(feedID int64) error
	GetFeed(feedID int64) (*Feed, error)
	GetFeedByURL(url string) (*Feed, error)
	GetFeeds(category string) ([]Feed, error)
	GetCategories() ([]string, error)
	CountFeeds(category string) (int, error)
	UpdateMetadata(feed Feed) error
	SetActive(feedID int64, active bool) error
}

type EntryRepository interface {
	UpsertEntry(guid string, feedID int64) error
	UpdateContent(entry Entry) error
	StoreEntry(entry Entry) error
	GetEntry(entryID int64) (*Entry, error)
	GetEntries() ([]Entry, error)
	GetNext(filter EntryFilter) ([]Entry, error)
	CountEntries(filter EntryFilter) (int, error)
	SetProgress(entryID int64, progress float64) error
	SetImportant(entryID int64, important bool) error
}
