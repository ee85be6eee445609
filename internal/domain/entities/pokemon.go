package entities

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// maxMoves bounds how many move names a summary keeps; full move lists
// run to hundreds of entries and would waste synthesis tokens.
const maxMoves = 10

// PokemonSummary is the compact projection of a pokemon payload handed
// to answer synthesis. Only fields worth LLM tokens survive.
type PokemonSummary struct {
	Name          string         `json:"name"`
	Height        int            `json:"height"`
	Weight        int            `json:"weight"`
	Types         []string       `json:"types"`
	Stats         map[string]int `json:"stats"`
	Abilities     []string       `json:"abilities"`
	HiddenAbility string         `json:"hidden_ability,omitempty"`
	Moves         []string       `json:"moves"`
}

// SpeciesSummary is the compact projection of a pokemon-species payload.
type SpeciesSummary struct {
	Name          string   `json:"name"`
	CaptureRate   int      `json:"capture_rate"`
	BaseHappiness int      `json:"base_happiness"`
	GrowthRate    string   `json:"growth_rate"`
	EggGroups     []string `json:"egg_groups"`
	Color         string   `json:"color"`
	FlavorText    string   `json:"flavor_text"`
}

// rawPokemon mirrors the slice of the upstream pokemon schema we read.
type rawPokemon struct {
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		IsHidden bool `json:"is_hidden"`
		Ability  struct {
			Name string `json:"name"`
		} `json:"ability"`
	} `json:"abilities"`
	Moves []struct {
		Move struct {
			Name string `json:"name"`
		} `json:"move"`
	} `json:"moves"`
}

// rawSpecies mirrors the slice of the upstream pokemon-species schema we read.
type rawSpecies struct {
	Name          string `json:"name"`
	CaptureRate   int    `json:"capture_rate"`
	BaseHappiness int    `json:"base_happiness"`
	GrowthRate    struct {
		Name string `json:"name"`
	} `json:"growth_rate"`
	EggGroups []struct {
		Name string `json:"name"`
	} `json:"egg_groups"`
	Color struct {
		Name string `json:"name"`
	} `json:"color"`
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// SummarizePokemon reduces a raw pokemon payload to its summary.
func SummarizePokemon(payload []byte) (PokemonSummary, error) {
	var raw rawPokemon
	if err := json.Unmarshal(payload, &raw); err != nil {
		return PokemonSummary{}, fmt.Errorf("parsing pokemon payload: %w", err)
	}

	s := PokemonSummary{
		Name:   raw.Name,
		Height: raw.Height,
		Weight: raw.Weight,
		Stats:  make(map[string]int, len(raw.Stats)),
	}
	for _, t := range raw.Types {
		s.Types = append(s.Types, t.Type.Name)
	}
	for _, st := range raw.Stats {
		s.Stats[st.Stat.Name] = st.BaseStat
	}
	for _, a := range raw.Abilities {
		if a.IsHidden {
			if s.HiddenAbility == "" {
				s.HiddenAbility = a.Ability.Name
			}
			continue
		}
		s.Abilities = append(s.Abilities, a.Ability.Name)
	}
	for i, m := range raw.Moves {
		if i >= maxMoves {
			break
		}
		s.Moves = append(s.Moves, m.Move.Name)
	}
	return s, nil
}

// SummarizeSpecies reduces a raw species payload to its summary. The
// flavor text is the first entry matching the locale's language tag,
// or empty when none matches.
func SummarizeSpecies(payload []byte, locale string) (SpeciesSummary, error) {
	var raw rawSpecies
	if err := json.Unmarshal(payload, &raw); err != nil {
		return SpeciesSummary{}, fmt.Errorf("parsing species payload: %w", err)
	}

	s := SpeciesSummary{
		Name:          raw.Name,
		CaptureRate:   raw.CaptureRate,
		BaseHappiness: raw.BaseHappiness,
		GrowthRate:    raw.GrowthRate.Name,
		Color:         raw.Color.Name,
	}
	for _, g := range raw.EggGroups {
		s.EggGroups = append(s.EggGroups, g.Name)
	}
	for _, f := range raw.FlavorTextEntries {
		if f.Language.Name == locale {
			s.FlavorText = f.FlavorText
			break
		}
	}
	return s, nil
}

// EvolutionChainID extracts the numeric chain ID from a species
// payload's evolution_chain URL ("…/evolution-chain/2/").
func EvolutionChainID(payload []byte) (int, bool) {
	var raw rawSpecies
	if err := json.Unmarshal(payload, &raw); err != nil {
		return 0, false
	}
	url := strings.TrimSuffix(raw.EvolutionChain.URL, "/")
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(url[idx+1:])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// chainLink is the recursive node of an evolution-chain payload.
type chainLink struct {
	Species struct {
		Name string `json:"name"`
	} `json:"species"`
	EvolvesTo []chainLink `json:"evolves_to"`
}

// EvolutionSpecies flattens an evolution-chain payload into the ordered
// list of species names, base form first.
func EvolutionSpecies(payload []byte) ([]string, error) {
	var raw struct {
		Chain chainLink `json:"chain"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("parsing evolution chain payload: %w", err)
	}

	var names []string
	var walk func(link chainLink)
	walk = func(link chainLink) {
		if link.Species.Name != "" {
			names = append(names, link.Species.Name)
		}
		for _, next := range link.EvolvesTo {
			walk(next)
		}
	}
	walk(raw.Chain)
	return names, nil
}

// PayloadIdentity pulls the id and lowercase name out of a record
// payload. Name is empty when the payload carries none.
func PayloadIdentity(payload []byte) (id int, name string) {
	var raw struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return 0, ""
	}
	return raw.ID, NormalizeName(raw.Name)
}

// FallbackAnswer builds the deterministic answer used when synthesis is
// unavailable. It states only facts present in the summary.
func FallbackAnswer(s PokemonSummary) string {
	types := strings.Join(s.Types, ", ")
	stats := make([]string, 0, len(s.Stats))
	for name := range s.Stats {
		stats = append(stats, name)
	}
	sort.Strings(stats)
	return fmt.Sprintf("%s's type(s) are %s; base stats include %s.", s.Name, types, strings.Join(stats, ", "))
}
