package commands

import (
	"fmt"

	"github.com/jessevdk/go-flags"

	"feedbox/app/database"
)

type markOpts struct {
	Progress    *float64 `long:"progress" short:"p" description:"Consumption state in [0,1]; 1 marks the entry read"`
	Important   bool     `long:"important" description:"Flag the entry as important"`
	Unimportant bool     `long:"unimportant" description:"Clear the importance flag"`

	Positional struct {
		EntryID int64 `positional-arg-name:"ENTRY_ID" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

// runMark mutates the user-owned state of one entry: its progress
// and/or its importance flag.
func runMark(args []string) error {
	var opts markOpts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PrintErrors|flags.PassDoubleDash)
	parser.Usage = "mark [OPTIONS] ENTRY_ID"
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if opts.Progress == nil && !opts.Important && !opts.Unimportant {
		return fmt.Errorf("mark requires --progress, --important or --unimportant")
	}
	if opts.Important && opts.Unimportant {
		return fmt.Errorf("--important and --unimportant are mutually exclusive")
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(db)

	entryRepo := database.NewEntryRepository(db)
	entry, err := entryRepo.GetEntry(opts.Positional.EntryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry %d not found", opts.Positional.EntryID)
	}

	if opts.Progress != nil {
		if err := entryRepo.SetProgress(entry.ID, *opts.Progress); err != nil {
			return err
		}
	}
	if opts.Important || opts.Unimportant {
		if err := entryRepo.SetImportant(entry.ID, opts.Important); err != nil {
			return err
		}
	}

	return nil
}
