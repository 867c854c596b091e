package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"feedbox/app/database"
	"feedbox/app/tasks"
)

// runRefresh fetches and reconciles all feeds, or the given ids.
// Per-feed failures are reported but do not fail the process; only a
// storage fault does.
func runRefresh(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	entryRepo := database.NewEntryRepository(db)
	refresher := newRefresher(feedRepo, entryRepo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var report *tasks.Report
	if len(ids) > 0 {
		report, err = refresher.RefreshByID(ctx, ids)
	} else {
		report, err = refresher.RefreshAll(ctx)
	}
	if err != nil {
		return err
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(os.Stderr, "Feed %d failed: %v\n", failure.FeedID, failure.Err)
	}
	fmt.Printf("Refreshed %d feeds, %d entries, %d failures.\n",
		report.FeedsAttempted, report.EntriesIngested, len(report.Failures))

	return nil
}
