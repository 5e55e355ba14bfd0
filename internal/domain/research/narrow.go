package research

import "strings"

// Query narrowing for time-windowed X search. An over-specific topic
// (proper nouns, multi-word phrases) often returns nothing from a recency
// filtered search; the ladder trades phrase fidelity for recall while
// keeping the date filter constant.

// weakTerms are qualifiers that carry no search signal on their own and
// never win the last-chance slot.
var weakTerms = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "for": {}, "in": {}, "on": {},
	"to": {}, "with": {}, "and": {}, "or": {}, "vs": {}, "how": {}, "what": {},
	"best": {}, "top": {}, "good": {}, "great": {}, "new": {}, "latest": {},
}

// SinceQuery appends the date filter suffix used by every attempt.
func SinceQuery(query string, fromDate string) string {
	return strings.TrimSpace(query) + " since:" + fromDate
}

// NarrowedQueries returns the two fallback queries derived from a core
// subject: the first two salient terms, then the single strongest term.
// Only this 3-step ladder (literal topic, two terms, one term) is supported;
// the returned queries may repeat when the subject is short.
func NarrowedQueries(coreSubject string) [2]string {
	terms := strings.Fields(strings.TrimSpace(coreSubject))
	if len(terms) == 0 {
		return [2]string{}
	}

	twoTerms := strings.Join(terms[:min(2, len(terms))], " ")
	return [2]string{twoTerms, StrongestTerm(coreSubject)}
}

// StrongestTerm picks the first term that is not a weak qualifier, falling
// back to the leading term when every candidate is weak.
func StrongestTerm(coreSubject string) string {
	terms := strings.Fields(strings.TrimSpace(coreSubject))
	if len(terms) == 0 {
		return ""
	}

	for _, term := range terms {
		if _, weak := weakTerms[strings.ToLower(term)]; !weak {
			return term
		}
	}
	return terms[0]
}
