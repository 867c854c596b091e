package commands

import (
	"fmt"

	"feedbox/app/database"
)

// runStatus prints aggregate counts for the whole store.
func runStatus(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("status takes no arguments")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	entryRepo := database.NewEntryRepository(db)

	feeds, err := feedRepo.CountFeeds("")
	if err != nil {
		return err
	}
	entries, err := entryRepo.CountEntries(database.EntryFilter{MaxProgress: 1})
	if err != nil {
		return err
	}
	unread, err := entryRepo.CountEntries(database.Unread())
	if err != nil {
		return err
	}

	fmt.Printf("Database contains %d feeds, %d entries, %d unread.\n", feeds, entries, unread)
	return nil
}
