package chat

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"yes", IntentConfirmation},
		{"Sure, why not", IntentConfirmation},
		{"thanks", IntentCloseFlow},
		{"thank you so much", IntentCloseFlow},
		{"no", IntentCloseFlow},
		{"nope", IntentCloseFlow},
		{"What medicines do I need to take today?", IntentMedicine},
		{"show today's medicine", IntentMedicine},
		{"I feel like eating fruits?", IntentPantryCheck},
		{"we are out of vegetables", IntentPantryCheck},
		{"I want to buy some groceries", IntentShopping},
		{"take me to the store", IntentShopping},
		{"I want to go out today", IntentOuting},
		{"dinner with friends", IntentOuting},
		{"I feel sleepy", IntentSleep},
		{"time for bed", IntentSleep},
		{"call someone", IntentDial},
		{"i need someone", IntentDial},
		{"hello", IntentGreeting},
		{"asdfghjkl", IntentFallback},
		{"", IntentFallback},
	}

	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// Medicine requires both a medicine keyword and a temporal keyword, and wins
// over the shopping and outing rules even when their keywords are present.
func TestClassifyMedicinePriority(t *testing.T) {
	got := Classify("I want to buy today's medicine at the store")
	if got != IntentMedicine {
		t.Fatalf("Classify() = %q, want %q", got, IntentMedicine)
	}

	// Medicine word without a temporal word drops through to pantry check.
	got = Classify("do I have medicine")
	if got != IntentPantryCheck {
		t.Fatalf("Classify() = %q, want %q", got, IntentPantryCheck)
	}

	// Temporal word alone matches nothing medicine-related.
	got = Classify("what is happening today")
	if got != IntentFallback {
		t.Fatalf("Classify() = %q, want %q", got, IntentFallback)
	}
}

// Close-flow outranks every topical rule: "no" inside a shopping sentence
// still closes the flow. Matching is substring-based by design.
func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  Intent
	}{
		{"no, I don't want to buy anything", IntentCloseFlow},
		{"yes, set the alarm", IntentConfirmation},
		{"grocery store", IntentPantryCheck}, // pantry is checked before shopping
		{"I plan to sleep", IntentOuting},    // outing is checked before sleep
	}

	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClassifyCaseFolding(t *testing.T) {
	if got := Classify("HELLO"); got != IntentGreeting {
		t.Fatalf("Classify(HELLO) = %q, want %q", got, IntentGreeting)
	}
	if got := Classify("I Want To BUY Something"); got != IntentShopping {
		t.Fatalf("Classify() = %q, want %q", got, IntentShopping)
	}
}
