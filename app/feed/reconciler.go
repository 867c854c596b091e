package feed

import (
	"fmt"
	"time"

	"feedbox/app/database"
)

// Reconciler merges one fetch outcome into the store without touching
// user-owned state. Re-running a reconciliation with identical source
// data is a no-op on progress and importance; changed content updates
// only content fields.
type Reconciler struct {
	feedRepo  database.FeedRepository
	entryRepo database.EntryRepository
	now       func() time.Time
}

func NewReconciler(feedRepo database.FeedRepository, entryRepo database.EntryRepository) *Reconciler {
	return &Reconciler{
		feedRepo:  feedRepo,
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// Run applies a fetch result for the given feed and returns the number
// of entries processed. A not-modified result performs zero writes.
func (r *Reconciler) Run(feed *database.Feed, result *Result) (int, error) {
	if result.NotModified {
		return 0, nil
	}

	doc := result.Document
	refreshed := r.now().Unix()

	// The feed-level update time is the newest entry update; the
	// source's own claim is not trusted alone. A fetch without
	// entries keeps the previous value.
	updated := feed.UpdatedAt
	if len(doc.Entries) > 0 {
		updated = doc.Entries[0].UpdatedAt
		for _, item := range doc.Entries[1:] {
			if item.UpdatedAt > updated {
				updated = item.UpdatedAt
			}
		}
	}

	err := r.feedRepo.UpdateMetadata(database.Feed{
		URL:          feed.URL,
		ETag:         doc.ETag,
		LastModified: doc.LastModified,
		RefreshedAt:  refreshed,
		UpdatedAt:    updated,
		Title:        doc.Title,
		Description:  doc.Description,
		Link:         doc.Link,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update feed metadata: %w", err)
	}

	// Source order; duplicate guids within one fetch collapse to
	// last-write-wins on content.
	for _, item := range doc.Entries {
		err := r.entryRepo.StoreEntry(database.Entry{
			GUID:            item.GUID,
			FeedID:          feed.ID,
			RefreshedAt:     refreshed,
			UpdatedAt:       item.UpdatedAt,
			Title:           item.Title,
			Description:     item.Description,
			Link:            item.Link,
			EnclosureURL:    item.EnclosureURL,
			EnclosureLength: item.EnclosureLength,
			EnclosureType:   item.EnclosureType,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to store entry %q: %w", item.GUID, err)
		}
	}

	return len(doc.Entries), nil
}
