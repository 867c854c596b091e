package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseReportsSessionChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewConnection(path)
	require.NoError(t, err)
	_, _, err = RunMigrations(db)
	require.NoError(t, err)

	feedRepo := NewFeedRepository(db)
	entryRepo := NewEntryRepository(db)

	id, err := feedRepo.AddFeed("https://a.example.com/feed.xml", "news", 1)
	require.NoError(t, err)
	require.NoError(t, entryRepo.StoreEntry(Entry{GUID: "g1", FeedID: id, Title: "one"}))

	// one feed insert, one entry insert, one content update
	changes, err := db.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(3), changes)
}

func TestCloseWithoutWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := NewConnection(path)
	require.NoError(t, err)
	_, _, err = RunMigrations(db)
	require.NoError(t, err)

	repo := NewFeedRepository(db)
	_, err = repo.GetFeeds("")
	require.NoError(t, err)

	changes, err := db.Close()
	require.NoError(t, err)
	assert.Zero(t, changes)
}
