package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"feedbox/app/database"
)

// runExport writes the current subscription list as YAML, to a file
// when given, otherwise to stdout.
func runExport(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("export takes at most one file argument")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feeds, err := database.NewFeedRepository(db).GetFeeds("")
	if err != nil {
		return err
	}

	subs := make([]subscription, 0, len(feeds))
	for _, f := range feeds {
		subs = append(subs, subscription{
			Category: f.Category,
			Priority: f.Priority,
			URL:      f.URL,
		})
	}

	data, err := yaml.Marshal(subs)
	if err != nil {
		return fmt.Errorf("failed to marshal subscriptions: %w", err)
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		return nil
	}

	fmt.Print(string(data))
	return nil
}
