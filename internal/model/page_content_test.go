package model

import (
	"encoding/json"
	"testing"
)

func TestValidatePageContentEmptyAllowed(t *testing.T) {
	for _, pt := range []PageType{PageTypeQuiz, PageTypeTimeline, PageTypeLesson} {
		if err := ValidatePageContent(pt, nil); err != nil {
			t.Fatalf("%s: empty content must be allowed, got %v", pt, err)
		}
	}
}

func TestValidatePageContentQuiz(t *testing.T) {
	good := json.RawMessage(`{
		"questionPool": [
			{"questionText": "Pick one", "type": "multiple", "responses": [{"responseText": "yes", "isCorrect": true}]},
			{"questionText": "Rate it", "type": "rating", "lowBound": 1, "highBound": 10}
		],
		"questionsToAsk": 2,
		"percentToPass": 60
	}`)
	if err := ValidatePageContent(PageTypeQuiz, good); err != nil {
		t.Fatalf("valid quiz content rejected: %v", err)
	}

	tooMany := json.RawMessage(`{"questionPool": [], "questionsToAsk": 1, "percentToPass": 60}`)
	if err := ValidatePageContent(PageTypeQuiz, tooMany); err == nil {
		t.Fatal("questionsToAsk larger than pool must fail")
	}

	badPercent := json.RawMessage(`{"questionPool": [], "questionsToAsk": 0, "percentToPass": 120}`)
	if err := ValidatePageContent(PageTypeQuiz, badPercent); err == nil {
		t.Fatal("percentToPass over 100 must fail")
	}

	notJSON := json.RawMessage(`{broken`)
	if err := ValidatePageContent(PageTypeQuiz, notJSON); err == nil {
		t.Fatal("malformed JSON must fail")
	}
}

func TestValidatePageContentTimeline(t *testing.T) {
	good := json.RawMessage(`{"events": [{"date": "1950", "title": "Founding"}]}`)
	if err := ValidatePageContent(PageTypeTimeline, good); err != nil {
		t.Fatalf("valid timeline rejected: %v", err)
	}

	missingTitle := json.RawMessage(`{"events": [{"date": "1950"}]}`)
	if err := ValidatePageContent(PageTypeTimeline, missingTitle); err == nil {
		t.Fatal("timeline event without title must fail")
	}
}

func TestValidatePageContentUnknownType(t *testing.T) {
	if err := ValidatePageContent("Video", json.RawMessage(`{}`)); err == nil {
		t.Fatal("unknown page type must fail")
	}
}

func TestParseUserType(t *testing.T) {
	cases := map[string]UserLevel{
		"FamilyUser": LevelOther,
		"OtherUser":  LevelOther,
		"Employee":   LevelEmployee,
		"Employer":   LevelEmployer,
		"Admin":      LevelAdmin,
		"All":        LevelAll,
	}
	for s, want := range cases {
		got, ok := ParseUserType(s)
		if !ok || got != want {
			t.Fatalf("ParseUserType(%q) = %d, %v; want %d", s, got, ok, want)
		}
	}

	if _, ok := ParseUserType("Wizard"); ok {
		t.Fatal("unknown type must not parse")
	}
}
