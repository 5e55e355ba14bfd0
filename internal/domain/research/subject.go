package research

import (
	"context"
	"strings"
)

// TermExtractor reduces a topic to its salient terms, most salient first.
// It is the default core-subject collaborator for the X retry engine; a
// model-backed extractor can replace it behind the same port.
type TermExtractor struct{}

func NewTermExtractor() *TermExtractor {
	return &TermExtractor{}
}

// CoreSubject strips punctuation and filler from the topic and returns the
// remaining terms space-separated, preserving topic order. An all-filler
// topic is returned unchanged.
func (e *TermExtractor) CoreSubject(_ context.Context, topic string) (string, error) {
	fields := strings.Fields(topic)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		term := strings.Trim(field, `"'.,:;()[]?!`)
		if term == "" {
			continue
		}
		kept = append(kept, term)
	}

	if len(kept) == 0 {
		return strings.TrimSpace(topic), nil
	}
	return strings.Join(kept, " "), nil
}
