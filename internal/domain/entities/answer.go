package entities

// Answer is the response aggregate for one question. PokemonName and
// PokemonID are nil when no subject could be identified.
type Answer struct {
	Answer      string  `json:"answer"`
	PokemonName *string `json:"pokemon_name"`
	PokemonID   *int    `json:"pokemon_id"`
	Intent      *Intent `json:"intent"`
}
