package commands

import (
	"fmt"

	"feedbox/app/cfg"
	"feedbox/app/database"
)

// runFeeds lists all feeds, or shows the given ids.
func runFeeds(args []string) error {
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
	verbose := cfg.Get().Verbose

	if len(ids) > 0 {
		for _, id := range ids {
			feed, err := feedRepo.GetFeed(id)
			if err != nil {
				return err
			}
			if feed == nil {
				fmt.Printf("%d: not found\n", id)
				continue
			}
			fmt.Println(describeFeed(*feed, verbose))
		}
		return nil
	}

	feeds, err := feedRepo.GetFeeds("")
	if err != nil {
		return err
	}
	for _, feed := range feeds {
		fmt.Println(describeFeed(feed, verbose))
	}

	return nil
}

// runEntries lists all entries, or shows the given ids.
func runEntries(args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	entryRepo := database.NewEntryRepository(db)
	verbose := cfg.Get().Verbose

	if len(ids) > 0 {
		for _, id := range ids {
			entry, err := entryRepo.GetEntry(id)
			if err != nil {
				return err
			}
			if entry == nil {
				fmt.Printf("%d: not found\n", id)
				continue
			}
			fmt.Println(describeEntry(*entry, verbose))
		}
		return nil
	}

	entries, err := entryRepo.GetEntries()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Println(describeEntry(entry, verbose))
	}

	return nil
}

// runCategories lists the distinct categories with their unread
// counts.
func runCategories(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("categories takes no arguments")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	entryRepo := database.NewEntryRepository(db)

	categories, err := feedRepo.GetCategories()
	if err != nil {
		return err
	}
	for _, category := range categories {
		filter := database.Unread()
		filter.Category = category
		unread, err := entryRepo.CountEntries(filter)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d\n", category, unread)
	}

	return nil
}
