package chat

import "strings"

// Intent is the classification bucket for one user utterance.
type Intent string

const (
	IntentConfirmation Intent = "confirmation"
	IntentCloseFlow    Intent = "closeFlow" // thanks and plain "no" both end the exchange
	IntentMedicine     Intent = "medicine"
	IntentPantryCheck  Intent = "pantryCheck"
	IntentShopping     Intent = "shopping"
	IntentOuting       Intent = "outing"
	IntentSleep        Intent = "sleep"
	IntentDial         Intent = "dial"
	IntentGreeting     Intent = "greeting"
	IntentFallback     Intent = "fallback"
)

// Classify maps an utterance to an intent. Matching is case-folded substring
// containment, evaluated in a fixed priority order — the first rule that fires
// wins, regardless of how specific later matches would be. It never fails:
// anything unrecognized is IntentFallback.
func Classify(utterance string) Intent {
	input := strings.ToLower(utterance)

	switch {
	case containsAny(input, "yes", "sure"):
		return IntentConfirmation
	case containsAny(input, "thanks", "thank you", "no", "nope"):
		return IntentCloseFlow
	// Medicine needs both a medicine word and a temporal word in the same
	// utterance, and outranks the pantry/shopping rules that share keywords.
	case containsAny(input, "medicine", "medicines") && containsAny(input, "today", "today's"):
		return IntentMedicine
	case containsAny(input, "grocery", "medicine", "fruits", "vegetables"):
		return IntentPantryCheck
	case containsAny(input, "buy", "store", "grocery"):
		return IntentShopping
	case containsAny(input, "go out", "party", "meet friends", "dinner", "plan"):
		return IntentOuting
	case containsAny(input, "sleep", "bed", "night", "sleepy"):
		return IntentSleep
	case containsAny(input, "call", "dial", "phone", "help", "i need someone", "assistance"):
		return IntentDial
	case containsAny(input, "hi", "hey", "hello"):
		return IntentGreeting
	default:
		return IntentFallback
	}
}

func containsAny(input string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}
