package commands

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"feedbox/app/cfg"
	"feedbox/app/database"
	"feedbox/app/feed"
	"feedbox/app/tasks"
)

// openStore opens the configured database and applies migrations.
func openStore() (*database.DB, error) {
	c := cfg.Get()

	db, err := database.NewConnection(c.Database)
	if err != nil {
		return nil, err
	}
	if _, _, err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// closeStore releases the connection and reports the session's change
// count when verbose output is on.
func closeStore(db *database.DB) {
	changes, err := db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: failed to close database:", err)
		return
	}
	if cfg.Get().Verbose {
		fmt.Printf("Changes within this session: %d.\n", changes)
	}
}

// newRefresher wires the fetch pipeline used by refresh and serve.
func newRefresher(feedRepo database.FeedRepository, entryRepo database.EntryRepository) *tasks.Refresher {
	c := cfg.Get()
	fetcher := feed.NewFetcher(&http.Client{}, c.UserAgent,
		time.Duration(c.FetchTimeout)*time.Second)
	reconciler := feed.NewReconciler(feedRepo, entryRepo)

	return tasks.NewRefresher(feedRepo, fetcher, reconciler, c.WorkerCount)
}

// parseIDs converts positional arguments to numeric ids.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseSubscription splits a "category,priority,url" tuple. An empty
// category falls back to the default grouping.
func parseSubscription(s string) (url, category string, priority int, err error) {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("expected category,priority,url, got %q", s)
	}

	category = strings.Trim(strings.TrimSpace(parts[0]), `"`)
	priority, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid priority in %q: %w", s, err)
	}
	url = strings.Trim(strings.TrimSpace(parts[2]), `"`)

	if url == "" {
		return "", "", 0, fmt.Errorf("empty url in %q", s)
	}
	if category == "" {
		category = "misc"
	}

	return url, category, priority, nil
}

func describeFeed(f database.Feed, verbose bool) string {
	if !verbose {
		return fmt.Sprintf("%d: %s", f.ID, f.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "id          : %d\n", f.ID)
	fmt.Fprintf(&b, "url         : %s\n", f.URL)
	fmt.Fprintf(&b, "title       : %s\n", f.Title)
	fmt.Fprintf(&b, "description : %s\n", firstLine(f.Description))
	fmt.Fprintf(&b, "link        : %s\n", f.Link)
	fmt.Fprintf(&b, "category    : %s\n", f.Category)
	fmt.Fprintf(&b, "priority    : %d\n", f.Priority)
	fmt.Fprintf(&b, "refreshed   : %s\n", timeFmt(f.RefreshedAt))
	fmt.Fprintf(&b, "updated     : %s\n", timeFmt(f.UpdatedAt))
	fmt.Fprintf(&b, "active      : %t\n", f.IsActive)
	return b.String()
}

func describeEntry(e database.Entry, verbose bool) string {
	if !verbose {
		return fmt.Sprintf("%d: %s", e.ID, e.Title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "id          : %d\n", e.ID)
	fmt.Fprintf(&b, "feed        : %d\n", e.FeedID)
	fmt.Fprintf(&b, "guid        : %s\n", e.GUID)
	fmt.Fprintf(&b, "title       : %s\n", e.Title)
	fmt.Fprintf(&b, "description : %s\n", firstLine(e.Description))
	fmt.Fprintf(&b, "link        : %s\n", e.Link)
	fmt.Fprintf(&b, "refreshed   : %s\n", timeFmt(e.RefreshedAt))
	fmt.Fprintf(&b, "updated     : %s\n", timeFmt(e.UpdatedAt))
	if e.EnclosureURL != "" {
		fmt.Fprintf(&b, "enclosure   : %s (%s, %d bytes)\n",
			e.EnclosureURL, e.EnclosureType, e.EnclosureLength)
	}
	fmt.Fprintf(&b, "progress    : %g\n", e.Progress)
	fmt.Fprintf(&b, "important   : %t\n", e.IsImportant)
	return b.String()
}

func timeFmt(ts int64) string {
	if ts == 0 {
		return "never"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > 66 {
		s = string(runes[:66])
	}
	return s
}
