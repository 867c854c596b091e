package cfg

type Cfg struct {
	// Store configuration
	Database string

	// Refresh configuration
	WorkerCount     int
	FetchTimeout    int
	RefreshInterval int
	UserAgent       string

	// Serve mode
	Port         string
	APIAccessKey string

	// Output
	Verbose bool
	Debug   bool
	Version string

	// Remaining command line: subcommand name and its arguments
	Args []string
}
