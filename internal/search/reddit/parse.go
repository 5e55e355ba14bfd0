package reddit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"last30days/internal/domain/research"
)

var (
	itemsBlockRe = regexp.MustCompile(`\{[\s\S]*"items"[\s\S]*\}`)
	dateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type rawItem struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Subreddit   string   `json:"subreddit"`
	Date        *string  `json:"date"`
	WhyRelevant string   `json:"why_relevant"`
	Relevance   *float64 `json:"relevance"`
}

type rawPayload struct {
	Items []rawItem `json:"items"`
}

// ParseItems extracts and validates thread items from model output text.
// Output that contains no usable JSON yields an empty slice, not an error:
// an unparseable response is an unproductive search, nothing more.
func ParseItems(outputText string) []research.Item {
	block := itemsBlockRe.FindString(outputText)
	if block == "" {
		return nil
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil
	}

	items := make([]research.Item, 0, len(payload.Items))
	for _, raw := range payload.Items {
		item, ok := cleanItem(raw, len(items)+1)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// cleanItem keeps only actual discussion threads and normalizes fields.
func cleanItem(raw rawItem, ordinal int) (research.Item, bool) {
	url := strings.TrimSpace(raw.URL)
	if url == "" || !strings.Contains(url, "reddit.com") {
		return research.Item{}, false
	}
	if !strings.Contains(url, "/r/") || !strings.Contains(url, "/comments/") {
		return research.Item{}, false
	}

	date := ""
	if raw.Date != nil && dateRe.MatchString(strings.TrimSpace(*raw.Date)) {
		date = strings.TrimSpace(*raw.Date)
	}

	relevance := 0.5
	if raw.Relevance != nil {
		relevance = min(1.0, max(0.0, *raw.Relevance))
	}

	return research.Item{
		ID:          fmt.Sprintf("R%d", ordinal),
		Source:      research.SourceReddit,
		Title:       strings.TrimSpace(raw.Title),
		URL:         url,
		Subreddit:   strings.TrimPrefix(strings.TrimSpace(raw.Subreddit), "r/"),
		Date:        date,
		WhyRelevant: strings.TrimSpace(raw.WhyRelevant),
		Relevance:   relevance,
	}, true
}
