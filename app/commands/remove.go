package commands

import (
	"fmt"

	"feedbox/app/cfg"
	"feedbox/app/database"
)

// runRemove deletes feeds and their entries. Removing an unknown id is
// a no-op, matching the store contract.
func runRemove(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("remove requires at least one feed id")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	for _, id := range ids {
		if cfg.Get().Verbose {
			if feed, err := feedRepo.GetFeed(id); err == nil && feed != nil {
				fmt.Printf("Removing %s (%s)\n", feed.Title, feed.URL)
			}
		}
		if err := feedRepo.RemoveFeed(id); err != nil {
			return err
		}
	}

	return nil
}
