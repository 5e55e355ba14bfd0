package research

import "time"

// Source identifies the discovery channel an item came from.
type Source string

const (
	SourceReddit Source = "reddit"
	SourceX      Source = "x"
)

// Item is one discovered discussion thread or post.
type Item struct {
	ID          string  `json:"id"`
	Source      Source  `json:"source"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Subreddit   string  `json:"subreddit,omitempty"`
	Author      string  `json:"author,omitempty"`
	Date        string  `json:"date,omitempty"`
	WhyRelevant string  `json:"why_relevant,omitempty"`
	Relevance   float64 `json:"relevance"`
}

// Window is the inclusive date range a research run covers.
type Window struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Report is the merged outcome of one research run.
type Report struct {
	RunID       string    `json:"run_id"`
	Topic       string    `json:"topic"`
	Window      Window    `json:"window"`
	Mode        string    `json:"mode"`
	Depth       string    `json:"depth"`
	FromCache   bool      `json:"from_cache"`
	RedditItems []Item    `json:"reddit_items"`
	XItems      []Item    `json:"x_items"`
	GeneratedAt time.Time `json:"generated_at"`
}

func (r Report) TotalItems() int {
	return len(r.RedditItems) + len(r.XItems)
}
