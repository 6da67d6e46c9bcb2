package questionnaire

import (
	"sort"
	"strings"
)

// NormalizeQuestion lowercases question text and collapses internal
// whitespace so cosmetic edits do not defeat deduplication.
func NormalizeQuestion(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// QuestionSetKey derives an order-insensitive key for a question set. Two
// questionnaires with the same key are considered duplicates.
func QuestionSetKey(questions []Question) string {
	normalized := make([]string, 0, len(questions))
	seen := map[string]bool{}
	for _, q := range questions {
		n := NormalizeQuestion(q.Text)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}
	sort.Strings(normalized)
	return strings.Join(normalized, "\x1f")
}
