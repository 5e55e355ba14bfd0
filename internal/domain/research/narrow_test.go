package research

import (
	"context"
	"testing"
)

func TestSinceQuery(t *testing.T) {
	got := SinceQuery("best codex skill plugin", "2026-01-01")
	want := "best codex skill plugin since:2026-01-01"
	if got != want {
		t.Fatalf("SinceQuery() = %q, want %q", got, want)
	}
}

func TestNarrowedQueriesFourTerms(t *testing.T) {
	got := NarrowedQueries("best codex skill plugin")

	if got[0] != "best codex" {
		t.Fatalf("first narrowed query = %q, want %q", got[0], "best codex")
	}
	if got[1] != "codex" {
		t.Fatalf("last-chance query = %q, want %q", got[1], "codex")
	}
}

func TestNarrowedQueriesSingleTerm(t *testing.T) {
	got := NarrowedQueries("codex")

	if got[0] != "codex" || got[1] != "codex" {
		t.Fatalf("NarrowedQueries(single term) = %v", got)
	}
}

func TestNarrowedQueriesEmptySubject(t *testing.T) {
	got := NarrowedQueries("   ")

	if got[0] != "" || got[1] != "" {
		t.Fatalf("NarrowedQueries(empty) = %v, want empty queries", got)
	}
}

func TestStrongestTermSkipsWeakQualifiers(t *testing.T) {
	cases := []struct {
		subject string
		want    string
	}{
		{"best codex skill plugin", "codex"},
		{"the latest swiftui", "swiftui"},
		{"figma", "figma"},
		{"best top", "best"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := StrongestTerm(tc.subject); got != tc.want {
			t.Fatalf("StrongestTerm(%q) = %q, want %q", tc.subject, got, tc.want)
		}
	}
}

func TestTermExtractorCoreSubject(t *testing.T) {
	extractor := NewTermExtractor()

	got, err := extractor.CoreSubject(context.Background(), `"SwiftUI animations" (iOS 19)`)
	if err != nil {
		t.Fatalf("CoreSubject() error = %v", err)
	}
	if got != "SwiftUI animations iOS 19" {
		t.Fatalf("CoreSubject() = %q", got)
	}
}
