package commands

import (
	"fmt"
	"log/slog"
	"os"

	"feedbox/app/cfg"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

func commandTable() []command {
	return []command{
		{"add", `Add feeds from "category,priority,url" tuples`, runAdd},
		{"import", "Add feeds from CSV or YAML subscription files", runImport},
		{"export", "Write the subscription list as YAML", runExport},
		{"remove", "Remove feeds and their entries by id", runRemove},
		{"refresh", "Refresh all feeds, or the given ids", runRefresh},
		{"feeds", "List feeds, or show the given ids", runFeeds},
		{"entries", "List entries, or show the given ids", runEntries},
		{"categories", "List categories with unread counts", runCategories},
		{"next", "Show what to read next", runNext},
		{"mark", "Set progress or importance of an entry", runMark},
		{"status", "Show aggregate counts", runStatus},
		{"serve", "Run the HTTP API with scheduled refreshes", runServe},
	}
}

// Run parses the command line and executes the selected command,
// returning the process exit code.
func Run() int {
	c, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if c == nil {
		// Help was shown
		return 0
	}

	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(c.Args) == 0 {
		printUsage()
		return 2
	}

	name, args := c.Args[0], c.Args[1:]
	for _, cmd := range commandTable() {
		if cmd.name == name {
			if err := cmd.run(args); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return 1
			}
			return 0
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", name)
	printUsage()
	return 2
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: feedbox [OPTIONS] COMMAND [ARG...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	for _, cmd := range commandTable() {
		fmt.Fprintf(os.Stderr, "  %-11s %s\n", cmd.name, cmd.summary)
	}
}
