package commands

import (
	"fmt"
	"os"

	"feedbox/app/cfg"
	"feedbox/app/database"
)

// runAdd inserts feeds from "category,priority,url" tuples. A bad
// tuple is reported and skipped; the remaining tuples are still added.
func runAdd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("add requires at least one \"category,priority,url\" tuple")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	for _, tuple := range args {
		url, category, priority, err := parseSubscription(tuple)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", tuple, err)
			continue
		}

		id, err := feedRepo.AddFeed(url, category, priority)
		if err != nil {
			return err
		}
		if cfg.Get().Verbose {
			fmt.Printf("Added feed %d: %s (%s, priority %d)\n", id, url, category, priority)
		}
	}

	return nil
}
