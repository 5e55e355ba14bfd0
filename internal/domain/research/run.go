package research

import "time"

// RunRecord is the history-ledger view of one research run.
type RunRecord struct {
	RunID       string
	Topic       string
	FromDate    string
	ToDate      string
	Mode        string
	Depth       string
	RedditCount int
	XCount      int
	FromCache   bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// DepthSpec bounds one search pass: how many items to ask for and how long
// an external call may take.
type DepthSpec struct {
	Name     string
	MinItems int
	MaxItems int
	Timeout  time.Duration
}
