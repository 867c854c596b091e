package tasks

// FeedFailure names one feed whose refresh failed and why.
type FeedFailure struct {
	FeedID int64
	URL    string
	Err    error
}

// Report aggregates the outcome of one refresh pass.
type Report struct {
	FeedsAttempted  int
	EntriesIngested int
	Failures        []FeedFailure
}
