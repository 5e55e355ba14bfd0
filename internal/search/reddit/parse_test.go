package reddit

import (
	"strings"
	"testing"
	"time"

	"last30days/internal/domain/research"
)

func TestParseItemsExtractsEmbeddedJSON(t *testing.T) {
	output := `Here is what I found:

{
  "items": [
    {
      "title": "Thoughts on the new design tools?",
      "url": "https://www.reddit.com/r/design/comments/abc123/thoughts/",
      "subreddit": "r/design",
      "date": "2026-01-15",
      "why_relevant": "Direct discussion",
      "relevance": 0.9
    },
    {
      "title": "Not a thread",
      "url": "https://www.reddit.com/user/somebody/",
      "date": "2026-01-16"
    },
    {
      "title": "Off-site",
      "url": "https://example.com/r/design/comments/x/",
      "date": "2026-01-16"
    }
  ]
}

Hope that helps.`

	items := ParseItems(output)

	if len(items) != 1 {
		t.Fatalf("ParseItems() = %d items, want 1", len(items))
	}

	item := items[0]
	if item.ID != "R1" || item.Source != research.SourceReddit {
		t.Fatalf("item identity = %+v", item)
	}
	if item.Subreddit != "design" {
		t.Fatalf("subreddit = %q, want stripped r/ prefix", item.Subreddit)
	}
	if item.Relevance != 0.9 {
		t.Fatalf("relevance = %v", item.Relevance)
	}
}

func TestParseItemsNoJSON(t *testing.T) {
	if items := ParseItems("I could not find anything recent."); len(items) != 0 {
		t.Fatalf("ParseItems() = %d items, want 0", len(items))
	}
}

func TestParseItemsCorruptJSON(t *testing.T) {
	if items := ParseItems(`{"items": [ {"title": }`); len(items) != 0 {
		t.Fatalf("ParseItems() = %d items, want 0", len(items))
	}
}

func TestParseItemsClampsRelevance(t *testing.T) {
	output := `{"items": [
		{"url": "https://reddit.com/r/a/comments/1/", "relevance": 1.7},
		{"url": "https://reddit.com/r/b/comments/2/", "relevance": -0.3},
		{"url": "https://reddit.com/r/c/comments/3/"}
	]}`

	items := ParseItems(output)
	if len(items) != 3 {
		t.Fatalf("ParseItems() = %d items, want 3", len(items))
	}
	if items[0].Relevance != 1.0 {
		t.Fatalf("relevance[0] = %v, want clamped to 1.0", items[0].Relevance)
	}
	if items[1].Relevance != 0.0 {
		t.Fatalf("relevance[1] = %v, want clamped to 0.0", items[1].Relevance)
	}
	if items[2].Relevance != 0.5 {
		t.Fatalf("relevance[2] = %v, want default 0.5", items[2].Relevance)
	}
}

func TestParseItemsInvalidDateDropped(t *testing.T) {
	output := `{"items": [
		{"url": "https://reddit.com/r/a/comments/1/", "date": "January 5th"},
		{"url": "https://reddit.com/r/b/comments/2/", "date": null}
	]}`

	items := ParseItems(output)
	if len(items) != 2 {
		t.Fatalf("ParseItems() = %d items, want 2", len(items))
	}
	for i, item := range items {
		if item.Date != "" {
			t.Fatalf("item %d date = %q, want empty for invalid date", i, item.Date)
		}
	}
}

func TestParseItemsRenumbersAfterDrops(t *testing.T) {
	output := `{"items": [
		{"url": "https://reddit.com/user/nobody/"},
		{"url": "https://reddit.com/r/a/comments/1/"},
		{"url": "https://reddit.com/r/b/comments/2/"}
	]}`

	items := ParseItems(output)
	if len(items) != 2 {
		t.Fatalf("ParseItems() = %d items, want 2", len(items))
	}
	if items[0].ID != "R1" || items[1].ID != "R2" {
		t.Fatalf("ids = %q, %q, want contiguous R1, R2", items[0].ID, items[1].ID)
	}
}

func TestBuildPromptCarriesWindowAndRange(t *testing.T) {
	window := research.Window{From: "2026-01-01", To: "2026-01-31"}
	depth := research.DepthSpec{Name: "quick", MinItems: 8, MaxItems: 12, Timeout: time.Minute}

	prompt := BuildPrompt("figma plugins", window, depth)

	for _, want := range []string{"figma plugins", "2026-01-01", "2026-01-31", "Find 8-12"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
