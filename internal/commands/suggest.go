package commands

import (
	"fmt"

	"elmora/internal/chat"
	"elmora/internal/output"
	"elmora/internal/record"
)

// RunSuggest prints a random suggested prompt.
func RunSuggest() {
	cfg := loadConfigOrExit()
	dir := cfg.DataDir
	if dir == "" {
		dir = record.DefaultDir()
	}

	suggestions := chat.LoadSuggestions(chat.SuggestionsPath(dir))
	suggestion := chat.Suggestion(suggestions)

	output.Print(map[string]string{"suggestion": suggestion}, func() {
		fmt.Println(suggestion)
	})
}
