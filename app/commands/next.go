package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jessevdk/go-flags"

	"feedbox/app/cfg"
	"feedbox/app/database"
	"feedbox/app/feed"
)

type nextOpts struct {
	Category   string `long:"category" short:"c" description:"Restrict to a category (SQL wildcards allowed)"`
	Feed       int64  `long:"feed" short:"f" description:"Restrict to one feed id"`
	Limit      int    `long:"limit" short:"n" default:"1" description:"Number of entries to show, 0 for all"`
	NoPriority bool   `long:"no-priority" description:"Order by update time alone, ignoring feed priority"`
	Full       bool   `long:"full" description:"Fetch the entry link and print its readable content"`
}

// runNext shows the next unread entries, honoring feed priority by
// default.
func runNext(args []string) error {
	var opts nextOpts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PrintErrors|flags.PassDoubleDash)
	parser.Usage = "next [OPTIONS]"
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	if opts.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	filter := database.Unread()
	filter.Category = opts.Category
	filter.FeedID = opts.Feed
	filter.Limit = opts.Limit
	if opts.NoPriority {
		filter.Order = database.OrderUpdatedOnly
	}

	entries, err := database.NewEntryRepository(db).GetNext(filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Nothing unread.")
		return nil
	}

	c := cfg.Get()
	for _, entry := range entries {
		fmt.Println(describeEntry(entry, true))

		if opts.Full {
			extractor := feed.NewContentExtractor(
				&http.Client{Timeout: time.Duration(c.FetchTimeout) * time.Second},
				c.UserAgent)
			text, err := extractor.Run(entry.Link)
			if err != nil {
				fmt.Printf("Could not extract content: %v\n", err)
				continue
			}
			fmt.Println(text)
		}
	}

	return nil
}
