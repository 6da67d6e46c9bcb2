package questionnaire

import "testing"

func TestNormalizeQuestion(t *testing.T) {
	if got := NormalizeQuestion("  How  well does\tthe employee COMMUNICATE? "); got != "how well does the employee communicate?" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got := NormalizeQuestion(""); got != "" {
		t.Fatalf("expected empty normalization, got %q", got)
	}
}

func TestQuestionSetKeyIgnoresOrderAndCase(t *testing.T) {
	a := []Question{{Text: "Rates teamwork"}, {Text: "Rates delivery"}}
	b := []Question{{Text: "rates  delivery"}, {Text: "RATES TEAMWORK"}}
	if QuestionSetKey(a) != QuestionSetKey(b) {
		t.Fatal("expected identical keys for reordered, re-cased question sets")
	}
}

func TestQuestionSetKeyDistinguishesDifferentSets(t *testing.T) {
	a := []Question{{Text: "Rates teamwork"}}
	b := []Question{{Text: "Rates leadership"}}
	if QuestionSetKey(a) == QuestionSetKey(b) {
		t.Fatal("expected different keys for different question sets")
	}
}

func TestQuestionSetKeyDropsBlankAndDuplicateQuestions(t *testing.T) {
	a := []Question{{Text: "Rates teamwork"}, {Text: "  "}, {Text: "rates teamwork"}}
	b := []Question{{Text: "Rates teamwork"}}
	if QuestionSetKey(a) != QuestionSetKey(b) {
		t.Fatal("expected blank and duplicate questions to be ignored")
	}
}
