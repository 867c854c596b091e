package tasks

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"feedbox/app/database"
	"feedbox/app/feed"
)

// Fetcher is the collaborator that retrieves one feed document.
type Fetcher interface {
	Run(ctx context.Context, url, etag, lastModified string) (*feed.Result, error)
}

// Refresher refreshes feeds from their sources. Fetches run on a
// bounded worker pool; reconciliation happens on a single goroutine so
// store writes stay serialized. One feed's failure never aborts the
// others, but a storage fault stops the whole pass.
type Refresher struct {
	feedRepo   database.FeedRepository
	fetcher    Fetcher
	reconciler *feed.Reconciler
	workers    int
}

func NewRefresher(feedRepo database.FeedRepository, fetcher Fetcher, reconciler *feed.Reconciler, workers int) *Refresher {
	if workers < 1 {
		workers = 1
	}
	return &Refresher{
		feedRepo:   feedRepo,
		fetcher:    fetcher,
		reconciler: reconciler,
		workers:    workers,
	}
}

// RefreshAll refreshes every active feed.
func (r *Refresher) RefreshAll(ctx context.Context) (*Report, error) {
	feeds, err := r.feedRepo.GetFeeds("")
	if err != nil {
		return nil, err
	}

	var targets []database.Feed
	for _, f := range feeds {
		if f.IsActive {
			targets = append(targets, f)
		}
	}

	return r.run(ctx, &Report{}, targets)
}

// RefreshByID refreshes the given feeds in ascending id order,
// including soft-disabled ones. Unknown ids are reported as failures.
func (r *Refresher) RefreshByID(ctx context.Context, feedIDs []int64) (*Report, error) {
	ids := slices.Clone(feedIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	report := &Report{}
	var targets []database.Feed
	for _, id := range ids {
		f, err := r.feedRepo.GetFeed(id)
		if err != nil {
			return nil, err
		}
		if f == nil {
			report.FeedsAttempted++
			report.Failures = append(report.Failures,
				FeedFailure{FeedID: id, Err: errors.New("feed not found")})
			continue
		}
		targets = append(targets, *f)
	}

	return r.run(ctx, report, targets)
}

func (r *Refresher) run(ctx context.Context, report *Report, feeds []database.Feed) (*Report, error) {
	report.FeedsAttempted += len(feeds)
	if len(feeds) == 0 {
		return report, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		feed   database.Feed
		result *feed.Result
		err    error
	}

	jobs := make(chan database.Feed)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				res, err := r.fetcher.Run(ctx, f.URL, f.ETag, f.LastModified)
				results <- outcome{feed: f, result: res, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range feeds {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single consumer: reconciliation is serialized against the
	// store regardless of how many fetches run concurrently.
	for out := range results {
		if out.err != nil {
			slog.Warn("Feed fetch failed",
				"feed_id", out.feed.ID, "url", out.feed.URL, "error", out.err)
			report.Failures = append(report.Failures,
				FeedFailure{FeedID: out.feed.ID, URL: out.feed.URL, Err: out.err})
			continue
		}

		count, err := r.reconciler.Run(&out.feed, out.result)
		if err != nil {
			// A persistent store fault stops processing rather
			// than risk silent partial writes.
			cancel()
			go func() {
				for range results {
				}
			}()
			return report, err
		}

		report.EntriesIngested += count
		slog.Debug("Feed reconciled", "feed_id", out.feed.ID, "entries", count)
	}

	return report, nil
}
