package research

import (
	"encoding/json"
	"fmt"
	"strings"

	domainresearch "last30days/internal/domain/research"
	"last30days/internal/errs"
)

// RenderMarkdown renders a report for terminal consumption.
func RenderMarkdown(report domainresearch.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Topic)
	fmt.Fprintf(&b, "Window: %s to %s | mode: %s | depth: %s",
		report.Window.From, report.Window.To, report.Mode, report.Depth)
	if report.FromCache {
		b.WriteString(" | cached")
	}
	b.WriteString("\n")

	if report.TotalItems() == 0 {
		b.WriteString("\nNo recent discussions found.\n")
		return b.String()
	}

	if len(report.RedditItems) > 0 {
		fmt.Fprintf(&b, "\n## Reddit threads (%d)\n\n", len(report.RedditItems))
		for _, item := range report.RedditItems {
			writeItem(&b, item)
		}
	}

	if len(report.XItems) > 0 {
		fmt.Fprintf(&b, "\n## X posts (%d)\n\n", len(report.XItems))
		for _, item := range report.XItems {
			writeItem(&b, item)
		}
	}

	return b.String()
}

func writeItem(b *strings.Builder, item domainresearch.Item) {
	title := item.Title
	if title == "" {
		title = item.URL
	}

	fmt.Fprintf(b, "- [%s] %s\n  %s\n", item.ID, title, item.URL)

	var details []string
	if item.Subreddit != "" {
		details = append(details, "r/"+item.Subreddit)
	}
	if item.Author != "" {
		details = append(details, "@"+item.Author)
	}
	if item.Date != "" {
		details = append(details, item.Date)
	}
	if item.WhyRelevant != "" {
		details = append(details, item.WhyRelevant)
	}
	if len(details) > 0 {
		fmt.Fprintf(b, "  %s\n", strings.Join(details, " | "))
	}
}

// RenderJSON renders the raw report for machine consumption.
func RenderJSON(report domainresearch.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errs.Wrap(err, "encode report")
	}
	return string(data) + "\n", nil
}
