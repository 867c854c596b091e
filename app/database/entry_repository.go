package database

import (
	"database/sql"
	"fmt"
	"strings"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func entryColumns(prefix string) []string {
	return []string{
		prefix + "id", prefix + "guid", prefix + "feed_id",
		prefix + "refreshed_at", prefix + "updated_at",
		"COALESCE(" + prefix + "title, '')",
		"COALESCE(" + prefix + "description, '')",
		"COALESCE(" + prefix + "link, '')",
		"COALESCE(" + prefix + "enclosure_url, '')",
		prefix + "enclosure_length",
		"COALESCE(" + prefix + "enclosure_type, '')",
		prefix + "progress", prefix + "is_important",
	}
}

// entryRepository handles database operations for entries
type entryRepository struct {
	db *DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *DB) EntryRepository {
	return &entryRepository{db: db}
}

// UpsertEntry ensures the identity row for a guid exists. Existing rows
// are left untouched, so re-ingestion never resets user state.
func (r *entryRepository) UpsertEntry(guid string, feedID int64) error {
	res, err := r.db.Exec(`
		INSERT INTO entries (guid, feed_id) VALUES (?, ?)
		ON CONFLICT (guid) DO NOTHING
	`, guid, feedID)
	if err != nil {
		return wrapErr("upsert entry", err)
	}
	r.db.track(res)

	return nil
}

// UpdateContent overwrites an entry's mutable content fields, matched
// by guid. Progress and is_important are deliberately not part of the
// statement.
func (r *entryRepository) UpdateContent(entry Entry) error {
	res, err := r.db.Exec(`
		UPDATE entries
		SET refreshed_at = ?, updated_at = ?,
		    title = ?, description = ?, link = ?,
		    enclosure_url = ?, enclosure_length = ?, enclosure_type = ?
		WHERE guid = ?
	`, entry.RefreshedAt, entry.UpdatedAt,
		entry.Title, entry.Description, entry.Link,
		entry.EnclosureURL, entry.EnclosureLength, entry.EnclosureType,
		entry.GUID)
	if err != nil {
		return wrapErr("update entry content", err)
	}
	r.db.track(res)

	return nil
}

// StoreEntry runs the identity upsert and the content update as one
// transaction, so a failed content write cannot leave a bare identity
// row behind.
func (r *entryRepository) StoreEntry(entry Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return wrapErr("store entry", err)
	}
	defer tx.Rollback()

	insertRes, err := tx.Exec(`
		INSERT INTO entries (guid, feed_id) VALUES (?, ?)
		ON CONFLICT (guid) DO NOTHING
	`, entry.GUID, entry.FeedID)
	if err != nil {
		return wrapErr("store entry", err)
	}
	updateRes, err := tx.Exec(`
		UPDATE entries
		SET refreshed_at = ?, updated_at = ?,
		    title = ?, description = ?, link = ?,
		    enclosure_url = ?, enclosure_length = ?, enclosure_type = ?
		WHERE guid = ?
	`, entry.RefreshedAt, entry.UpdatedAt,
		entry.Title, entry.Description, entry.Link,
		entry.EnclosureURL, entry.EnclosureLength, entry.EnclosureType,
		entry.GUID)
	if err != nil {
		return wrapErr("store entry", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("store entry", err)
	}
	r.db.track(insertRes)
	r.db.track(updateRes)

	return nil
}

// GetEntry retrieves an entry by id. Returns nil without error when the
// entry does not exist.
func (r *entryRepository) GetEntry(entryID int64) (*Entry, error) {
	row := r.db.QueryRow(
		"SELECT "+strings.Join(entryColumns(""), ", ")+" FROM entries WHERE id = ?", entryID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get entry", err)
	}

	return &entry, nil
}

// GetEntries lists all entries ordered by id.
func (r *entryRepository) GetEntries() ([]Entry, error) {
	rows, err := r.db.Query(
		"SELECT " + strings.Join(entryColumns(""), ", ") + " FROM entries ORDER BY id")
	if err != nil {
		return nil, wrapErr("get entries", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetNext returns entries matching the filter, joined to their feeds
// for category and priority, in the requested order. The trailing id
// sort keeps results deterministic for equal keys.
func (r *entryRepository) GetNext(filter EntryFilter) ([]Entry, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select(entryColumns("entries.")...).
		From("entries").
		Join("feeds", "entries.feed_id = feeds.id")
	sb.Where(sb.Between("entries.progress", filter.MinProgress, filter.MaxProgress))
	if filter.Category != "" {
		sb.Where(sb.Like("feeds.category", filter.Category))
	}
	if filter.FeedID != 0 {
		sb.Where(sb.Equal("entries.feed_id", filter.FeedID))
	}
	switch filter.Order {
	case OrderUpdatedOnly:
		sb.OrderBy("entries.updated_at", "entries.id")
	default:
		sb.OrderBy("feeds.priority", "entries.updated_at", "entries.id")
	}
	if filter.Limit > 0 {
		sb.Limit(filter.Limit)
	}

	query, args := sb.Build()
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr("get next", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// CountEntries returns the number of entries matching the filter.
func (r *entryRepository) CountEntries(filter EntryFilter) (int, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("COUNT(*)").
		From("entries").
		Join("feeds", "entries.feed_id = feeds.id")
	sb.Where(sb.Between("entries.progress", filter.MinProgress, filter.MaxProgress))
	if filter.Category != "" {
		sb.Where(sb.Like("feeds.category", filter.Category))
	}
	if filter.FeedID != 0 {
		sb.Where(sb.Equal("entries.feed_id", filter.FeedID))
	}

	query, args := sb.Build()
	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, wrapErr("count entries", err)
	}

	return count, nil
}

// SetProgress records the consumption state of an entry. Values outside
// [0, 1] are rejected before touching the store; the schema constraint
// backs this up.
func (r *entryRepository) SetProgress(entryID int64, progress float64) error {
	if progress < 0 || progress > 1 {
		return &ValidationError{
			Field: "progress",
			Msg:   fmt.Sprintf("%v is outside [0, 1]", progress),
		}
	}

	res, err := r.db.Exec("UPDATE entries SET progress = ? WHERE id = ?", progress, entryID)
	if err != nil {
		return wrapErr("set progress", err)
	}
	r.db.track(res)

	return nil
}

// SetImportant flips the importance flag of an entry.
func (r *entryRepository) SetImportant(entryID int64, important bool) error {
	res, err := r.db.Exec("UPDATE entries SET is_important = ? WHERE id = ?", important, entryID)
	if err != nil {
		return wrapErr("set important", err)
	}
	r.db.track(res)

	return nil
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	err := row.Scan(
		&entry.ID, &entry.GUID, &entry.FeedID,
		&entry.RefreshedAt, &entry.UpdatedAt,
		&entry.Title, &entry.Description, &entry.Link,
		&entry.EnclosureURL, &entry.EnclosureLength, &entry.EnclosureType,
		&entry.Progress, &entry.IsImportant,
	)
	return entry, err
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, wrapErr("scan entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("iterate entries", err)
	}

	return entries, nil
}
