package reddit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go/v2/responses"

	"last30days/internal/domain/research"
)

func testWindow() research.Window {
	return research.Window{From: "2026-01-01", To: "2026-01-31"}
}

func TestSearchThreadsParsesResponse(t *testing.T) {
	cache := newMemoryModelCache()
	client := NewClient("test-key", "gpt-5-mini", cache)

	var gotModel, gotPrompt string
	client.createAndRead = func(_ context.Context, model string, prompt string, _ research.DepthSpec) (string, error) {
		gotModel = model
		gotPrompt = prompt
		return `{"items": [{"title": "t", "url": "https://reddit.com/r/a/comments/1/", "relevance": 0.8}]}`, nil
	}

	depth := research.DepthSpec{Name: "quick", MinItems: 8, MaxItems: 12, Timeout: time.Minute}
	items, err := client.SearchThreads(context.Background(), "figma plugins", testWindow(), depth)
	if err != nil {
		t.Fatalf("SearchThreads() error = %v", err)
	}

	if len(items) != 1 || items[0].Source != research.SourceReddit {
		t.Fatalf("SearchThreads() items = %+v", items)
	}
	if gotModel != "gpt-5-mini" {
		t.Fatalf("model = %q", gotModel)
	}
	if !strings.Contains(gotPrompt, "figma plugins") || !strings.Contains(gotPrompt, "2026-01-01") {
		t.Fatalf("prompt missing topic or window:\n%s", gotPrompt)
	}
}

func TestSearchThreadsPropagatesTransportError(t *testing.T) {
	client := NewClient("test-key", "gpt-5-mini", newMemoryModelCache())
	client.createAndRead = func(context.Context, string, string, research.DepthSpec) (string, error) {
		return "", errors.New("502 bad gateway")
	}

	_, err := client.SearchThreads(context.Background(), "figma plugins", testWindow(), research.DepthSpec{Timeout: time.Minute})
	if err == nil {
		t.Fatalf("SearchThreads() expected error")
	}
}

func TestRedditSearchToolsRestrictToRedditDomain(t *testing.T) {
	tools := redditSearchTools()
	if len(tools) != 1 {
		t.Fatalf("redditSearchTools() returned %d tools, want 1", len(tools))
	}

	webSearch := tools[0].OfWebSearch
	if webSearch == nil {
		t.Fatalf("redditSearchTools() did not configure a web_search tool")
	}
	if webSearch.Type != responses.WebSearchToolTypeWebSearch {
		t.Fatalf("tool type = %q, want %q", webSearch.Type, responses.WebSearchToolTypeWebSearch)
	}

	domains := webSearch.Filters.AllowedDomains
	if len(domains) != 1 || domains[0] != "reddit.com" {
		t.Fatalf("allowed domains = %v, want [reddit.com]", domains)
	}
}

func TestSearchThreadsUnparseableOutputIsEmpty(t *testing.T) {
	client := NewClient("test-key", "gpt-5-mini", newMemoryModelCache())
	client.createAndRead = func(context.Context, string, string, research.DepthSpec) (string, error) {
		return "I found nothing recent, sorry.", nil
	}

	items, err := client.SearchThreads(context.Background(), "figma plugins", testWindow(), research.DepthSpec{Timeout: time.Minute})
	if err != nil {
		t.Fatalf("SearchThreads() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("SearchThreads() = %d items, want 0", len(items))
	}
}
