package chat

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// builtinSuggestions are shown when the user hasn't customized the list.
var builtinSuggestions = []string{
	"I feel like eating fruits?",
	"What medicines do I need to take today?",
	"I want to go out today",
	"I want to buy some groceries",
	"I feel sleepy",
}

// suggestionsFile is the optional user override format.
type suggestionsFile struct {
	Suggestions []string `yaml:"suggestions"`
}

// SuggestionsPath returns the override file location under a data directory.
func SuggestionsPath(dir string) string {
	return filepath.Join(dir, "suggestions.yaml")
}

// LoadSuggestions returns the prompt suggestions, preferring the YAML file at
// path when it exists and parses. A missing or malformed file falls back to
// the built-ins.
func LoadSuggestions(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return builtinSuggestions
	}
	var f suggestionsFile
	if err := yaml.Unmarshal(data, &f); err != nil || len(f.Suggestions) == 0 {
		return builtinSuggestions
	}
	return f.Suggestions
}

// Suggestion picks one suggestion at random and quotes it, ready to display
// as an input hint.
func Suggestion(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf("%q", suggestions[rand.Intn(len(suggestions))])
}
