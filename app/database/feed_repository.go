package database

import (
	"database/sql"
	"strings"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

var feedColumns = []string{
	"id", "url",
	"COALESCE(etag, '')", "COALESCE(last_modified, '')",
	"refreshed_at", "updated_at",
	"COALESCE(title, '')", "COALESCE(description, '')", "COALESCE(link, '')",
	"category", "priority", "is_active",
}

// feedRepository handles database operations for feeds
type feedRepository struct {
	db *DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *DB) FeedRepository {
	return &feedRepository{db: db}
}

// AddFeed inserts a feed by url or, when the url is already tracked,
// updates its category and priority. Validators and content fields are
// never touched here.
func (r *feedRepository) AddFeed(url, category string, priority int) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO feeds (url, category, priority)
		VALUES (?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			category = excluded.category,
			priority = excluded.priority
	`, url, category, priority)
	if err != nil {
		return 0, wrapErr("add feed", err)
	}
	r.db.track(res)

	var id int64
	err = r.db.QueryRow("SELECT id FROM feeds WHERE url = ?", url).Scan(&id)
	if err != nil {
		return 0, wrapErr("add feed", err)
	}

	return id, nil
}

// RemoveFeed deletes a feed and all its entries. Removing an unknown
// id is a no-op.
func (r *feedRepository) RemoveFeed(feedID int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return wrapErr("remove feed", err)
	}
	defer tx.Rollback()

	entryRes, err := tx.Exec("DELETE FROM entries WHERE feed_id = ?", feedID)
	if err != nil {
		return wrapErr("remove feed", err)
	}
	feedRes, err := tx.Exec("DELETE FROM feeds WHERE id = ?", feedID)
	if err != nil {
		return wrapErr("remove feed", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("remove feed", err)
	}
	r.db.track(entryRes)
	r.db.track(feedRes)

	return nil
}

// GetFeed retrieves a feed by id. Returns nil without error when the
// feed does not exist.
func (r *feedRepository) GetFeed(feedID int64) (*Feed, error) {
	row := r.db.QueryRow(
		"SELECT "+strings.Join(feedColumns, ", ")+" FROM feeds WHERE id = ?", feedID)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get feed", err)
	}

	return &feed, nil
}

// GetFeedByURL retrieves a feed by its source url.
func (r *feedRepository) GetFeedByURL(url string) (*Feed, error) {
	row := r.db.QueryRow(
		"SELECT "+strings.Join(feedColumns, ", ")+" FROM feeds WHERE url = ?", url)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get feed by url", err)
	}

	return &feed, nil
}

// GetFeeds lists feeds ordered by id, optionally narrowed by category.
// The category matches with LIKE, so SQL wildcards are allowed.
func (r *feedRepository) GetFeeds(category string) ([]Feed, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(feedColumns...).From("feeds")
	if category != "" {
		sb.Where(sb.Like("category", category))
	}
	sb.OrderBy("id")

	query, args := sb.Build()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr("get feeds", err)
	}
	defer rows.Close()

	var feeds []Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, wrapErr("get feeds", err)
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("get feeds", err)
	}

	return feeds, nil
}

// GetCategories returns the distinct feed categories, sorted.
func (r *feedRepository) GetCategories() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT category FROM feeds ORDER BY category")
	if err != nil {
		return nil, wrapErr("get categories", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, wrapErr("get categories", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("get categories", err)
	}

	return categories, nil
}

// CountFeeds returns the number of feeds, optionally narrowed by
// category.
func (r *feedRepository) CountFeeds(category string) (int, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)").From("feeds")
	if category != "" {
		sb.Where(sb.Like("category", category))
	}

	query, args := sb.Build()
	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, wrapErr("count feeds", err)
	}

	return count, nil
}

// UpdateMetadata overwrites a feed's validators, timestamps and display
// fields, matched by url. Category, priority and user flags stay
// untouched. An unknown url affects zero rows.
func (r *feedRepository) UpdateMetadata(feed Feed) error {
	res, err := r.db.Exec(`
		UPDATE feeds
		SET etag = ?, last_modified = ?,
		    refreshed_at = ?, updated_at = ?,
		    title = ?, description = ?, link = ?
		WHERE url = ?
	`, feed.ETag, feed.LastModified, feed.RefreshedAt, feed.UpdatedAt,
		feed.Title, feed.Description, feed.Link, feed.URL)
	if err != nil {
		return wrapErr("update feed metadata", err)
	}
	r.db.track(res)

	return nil
}

// SetActive flips the soft-disable flag of a feed.
func (r *feedRepository) SetActive(feedID int64, active bool) error {
	res, err := r.db.Exec("UPDATE feeds SET is_active = ? WHERE id = ?", active, feedID)
	if err != nil {
		return wrapErr("set feed active", err)
	}
	r.db.track(res)

	return nil
}

func scanFeed(row rowScanner) (Feed, error) {
	var feed Feed
	err := row.Scan(
		&feed.ID, &feed.URL, &feed.ETag, &feed.LastModified,
		&feed.RefreshedAt, &feed.UpdatedAt,
		&feed.Title, &feed.Description, &feed.Link,
		&feed.Category, &feed.Priority, &feed.IsActive,
	)
	return feed, err
}
