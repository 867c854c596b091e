package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"feedbox/app/cfg"
	"feedbox/app/database"
)

// subscription is one row of an imported or exported feed list.
type subscription struct {
	Category string `yaml:"category"`
	Priority int    `yaml:"priority"`
	URL      string `yaml:"url"`
}

// runImport adds feeds from subscription files. CSV files carry
// category,priority,url rows; .yml/.yaml files carry a list of
// subscription documents. A malformed row is skipped with a warning
// and never aborts the rest of the file.
func runImport(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires at least one file")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	feedRepo := database.NewFeedRepository(db)
	for _, path := range args {
		subs, err := readSubscriptions(path)
		if err != nil {
			return err
		}

		added := 0
		for _, sub := range subs {
			if sub.URL == "" {
				fmt.Fprintf(os.Stderr, "Skipping row without url in %s\n", path)
				continue
			}
			if sub.Category == "" {
				sub.Category = "misc"
			}
			if _, err := feedRepo.AddFeed(sub.URL, sub.Category, sub.Priority); err != nil {
				return err
			}
			added++
		}
		if cfg.Get().Verbose {
			fmt.Printf("Imported %d feeds from %s.\n", added, path)
		}
	}

	return nil
}

func readSubscriptions(path string) ([]subscription, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return readYAMLSubscriptions(path)
	default:
		return readCSVSubscriptions(path)
	}
}

func readCSVSubscriptions(path string) ([]subscription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var subs []subscription
	for _, row := range rows {
		tuple := strings.Join(row, ",")
		url, category, priority, err := parseSubscription(tuple)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping row in %s: %v\n", path, err)
			continue
		}
		subs = append(subs, subscription{Category: category, Priority: priority, URL: url})
	}

	return subs, nil
}

func readYAMLSubscriptions(path string) ([]subscription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var subs []subscription
	if err := yaml.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return subs, nil
}
