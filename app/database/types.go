package database

// EntryOrder selects the ordering applied by entry selection queries.
type EntryOrder int

const (
	// OrderPriorityThenUpdated sorts by feed priority (lower first),
	// then entry updated_at, ascending.
	OrderPriorityThenUpdated EntryOrder = iota
	// OrderUpdatedOnly sorts by entry updated_at alone.
	OrderUpdatedOnly
)

// EntryFilter narrows entry selection and count queries. The progress
// range is inclusive on both ends. Category matches with LIKE, so SQL
// wildcards are allowed; an empty category matches everything. A
// FeedID of zero matches all feeds, a Limit of zero means unlimited.
type EntryFilter struct {
	MinProgress float64
	MaxProgress float64
	Category    string
	FeedID      int64
	Limit       int
	Order       EntryOrder
}

// Unread selects entries with no recorded progress.
func Unread() EntryFilter {
	return EntryFilter{MinProgress: 0, MaxProgress: 0}
}
