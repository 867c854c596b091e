package cfg

import (
	"cmp"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	Database string `long:"database" short:"d" env:"FEEDBOX_DATABASE" default:"feedbox.db" description:"Path to the sqlite database file"`

	WorkerCount     int    `long:"worker-count" env:"FEEDBOX_WORKER_COUNT" default:"5" description:"Number of concurrent feed fetches during refresh"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FEEDBOX_FETCH_TIMEOUT" default:"30" description:"Per-feed fetch timeout in seconds"`
	RefreshInterval int    `long:"refresh-interval" env:"FEEDBOX_REFRESH_INTERVAL" default:"900" description:"Refresh interval in seconds for serve mode"`
	UserAgent       string `long:"user-agent" env:"FEEDBOX_USER_AGENT" default:"feedbox/1.0" description:"User agent string for HTTP requests"`

	Port         string `long:"port" env:"FEEDBOX_PORT" default:"8080" description:"HTTP server port for serve mode"`
	APIAccessKey string `long:"api-key" env:"FEEDBOX_API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	Verbose bool `long:"verbose" short:"v" description:"Print detailed output"`
	Debug   bool `long:"debug" env:"FEEDBOX_DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses global options from flags and environment variables.
// Everything after the first positional argument is left for the
// command dispatcher. Returns nil when help was requested.
func Load() (*Cfg, error) {
	return loadArgs(os.Args[1:])
}

func loadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.HelpFlag|flags.PrintErrors|flags.PassDoubleDash|flags.PassAfterNonOption)
	parser.Usage = "[OPTIONS] COMMAND [ARG...]"

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Database:        raw.Database,
		WorkerCount:     raw.WorkerCount,
		FetchTimeout:    raw.FetchTimeout,
		RefreshInterval: raw.RefreshInterval,
		UserAgent:       raw.UserAgent,
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		Verbose:         raw.Verbose,
		Debug:           raw.Debug,
		Version:         GetVersion(),
		Args:            rest,
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
