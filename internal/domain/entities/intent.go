// Package entities contains core domain data structures.
package entities

import "strings"

// Intent types the extractor is prompted to produce. The set is
// open-ended; these are the ones the prompts name.
const (
	IntentBasicInfo = "basic_info"
	IntentStats     = "stats"
	IntentEvolution = "evolution"
	IntentIntro     = "intro"
)

// Intent is the structured reading of a user question. It lives for one
// question-answer cycle and is never persisted.
type Intent struct {
	PokemonName  string `json:"pokemon_name"`  // Canonical lowercase English name, empty if unrecognized
	OriginalName string `json:"original_name"` // The name as the user phrased it
	IntentType   string `json:"intent_type"`
	DetailLevel  string `json:"detail_level"`
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
// All storage and lookup keys pass through here.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
