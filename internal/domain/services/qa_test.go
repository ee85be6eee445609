package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/mocks"
)

const testPokemonPayload = `{
	"id": 6,
	"name": "charizard",
	"height": 17,
	"weight": 905,
	"types": [{"type": {"name": "fire"}}, {"type": {"name": "flying"}}],
	"stats": [{"base_stat": 78, "stat": {"name": "hp"}}],
	"abilities": [{"is_hidden": false, "ability": {"name": "blaze"}}],
	"moves": [{"move": {"name": "flamethrower"}}]
}`

const testSpeciesPayload = `{
	"id": 6,
	"name": "charizard",
	"capture_rate": 45,
	"base_happiness": 50,
	"growth_rate": {"name": "medium-slow"},
	"egg_groups": [{"name": "monster"}],
	"color": {"name": "red"},
	"flavor_text_entries": [{"flavor_text": "Spits fire.", "language": {"name": "en"}}],
	"evolution_chain": {"url": "https://pokeapi.co/api/v2/evolution-chain/2/"}
}`

const testChainPayload = `{
	"id": 2,
	"chain": {
		"species": {"name": "charmander"},
		"evolves_to": [{"species": {"name": "charmeleon"}, "evolves_to": [{"species": {"name": "charizard"}, "evolves_to": []}]}]
	}
}`

// newQAFixture wires a QAService from mocks preloaded with charizard data.
func newQAFixture(llm *mocks.LLMClient) (*QAService, *mocks.PokeAPI, *mocks.RecordCache) {
	api := &mocks.PokeAPI{
		Pokemon: json.RawMessage(testPokemonPayload),
		Species: json.RawMessage(testSpeciesPayload),
		Chain:   json.RawMessage(testChainPayload),
	}
	cache := mocks.NewRecordCache()
	pokemon := NewPokemonService(api, cache, zap.NewNop())
	qa := NewQAService(llm, pokemon, cache, "en", zap.NewNop())
	return qa, api, cache
}

func TestQAService_Answer(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{
			PokemonName:  "charizard",
			OriginalName: "喷火龙",
			IntentType:   entities.IntentBasicInfo,
			DetailLevel:  "normal",
		},
		Answer: "Charizard is a fire/flying pokemon with 78 HP.",
	}
	qa, _, cache := newQAFixture(llm)

	answer, err := qa.Answer(context.Background(), "喷火龙的属性和种族值？")
	require.NoError(t, err)

	assert.Equal(t, "Charizard is a fire/flying pokemon with 78 HP.", answer.Answer)
	require.NotNil(t, answer.PokemonName)
	assert.Equal(t, "charizard", *answer.PokemonName)
	require.NotNil(t, answer.PokemonID)
	assert.Equal(t, 6, *answer.PokemonID)
	require.NotNil(t, answer.Intent)
	assert.Equal(t, "喷火龙", answer.Intent.OriginalName)
	assert.Equal(t, 1, cache.LogCalls, "answered question must be logged")
}

func TestQAService_Answer_NoSubjectIdentified(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{
			PokemonName:  "",
			OriginalName: "那个最强的",
			IntentType:   entities.IntentBasicInfo,
		},
	}
	qa, api, _ := newQAFixture(llm)

	answer, err := qa.Answer(context.Background(), "那个最强的宝可梦是谁？")
	require.NoError(t, err, "an unrecognized subject is a normal outcome, not an error")

	assert.NotEmpty(t, answer.Answer)
	assert.Nil(t, answer.PokemonName)
	assert.Nil(t, answer.PokemonID)
	require.NotNil(t, answer.Intent)
	assert.Equal(t, "那个最强的", answer.Intent.OriginalName)
	assert.Zero(t, api.PokemonCalls, "no resolution without a subject")
	assert.Zero(t, api.SpeciesCalls)
	assert.Zero(t, llm.SynthesizeCalls)
}

func TestQAService_Answer_IntentParseFailureIsFatal(t *testing.T) {
	llm := &mocks.LLMClient{
		ExtractErr: &entities.IntentParseError{Raw: "sure! here is the JSON..."},
	}
	qa, api, _ := newQAFixture(llm)

	_, err := qa.Answer(context.Background(), "what is pikachu?")
	require.Error(t, err)

	var parseErr *entities.IntentParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Zero(t, api.PokemonCalls, "no resolution after a parse failure")
	assert.Zero(t, api.SpeciesCalls)
}

func TestQAService_Answer_ResolutionFailureIsFatal(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{PokemonName: "missingno"},
	}
	qa, api, _ := newQAFixture(llm)
	api.PokemonErr = &entities.NotFoundError{Name: "missingno"}

	_, err := qa.Answer(context.Background(), "what is missingno?")
	require.Error(t, err)

	var notFound *entities.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Zero(t, llm.SynthesizeCalls, "no partial answer from one record")
}

func TestQAService_Answer_SynthesisFailureFallsBack(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent:        entities.Intent{PokemonName: "charizard", IntentType: entities.IntentStats},
		SynthesizeErr: errors.New("connection reset by peer"),
	}
	qa, _, _ := newQAFixture(llm)

	answer, err := qa.Answer(context.Background(), "charizard stats?")
	require.NoError(t, err, "synthesis failure must never fail the request")

	assert.NotEmpty(t, answer.Answer)
	assert.Contains(t, answer.Answer, "fire")
	assert.Contains(t, answer.Answer, "flying")
	require.NotNil(t, answer.PokemonID)
	assert.Equal(t, 6, *answer.PokemonID)
}

func TestQAService_Answer_EvolutionIntentFetchesChain(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{PokemonName: "charizard", IntentType: entities.IntentEvolution},
		Answer: "Charmander evolves to charmeleon, then charizard.",
	}
	qa, api, _ := newQAFixture(llm)

	_, err := qa.Answer(context.Background(), "how does charizard evolve?")
	require.NoError(t, err)

	assert.Equal(t, 1, api.ChainCalls)
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, llm.LastEvolution)
}

func TestQAService_Answer_ChainFetchFailureIsNotFatal(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{PokemonName: "charizard", IntentType: entities.IntentEvolution},
		Answer: "answer",
	}
	qa, api, _ := newQAFixture(llm)
	api.ChainErr = &entities.UpstreamError{Detail: "boom"}

	answer, err := qa.Answer(context.Background(), "how does charizard evolve?")
	require.NoError(t, err)
	assert.NotEmpty(t, answer.Answer)
	assert.Empty(t, llm.LastEvolution)
}

func TestQAService_Answer_NonEvolutionIntentSkipsChain(t *testing.T) {
	llm := &mocks.LLMClient{
		Intent: entities.Intent{PokemonName: "charizard", IntentType: entities.IntentBasicInfo},
		Answer: "answer",
	}
	qa, api, _ := newQAFixture(llm)

	_, err := qa.Answer(context.Background(), "tell me about charizard")
	require.NoError(t, err)
	assert.Zero(t, api.ChainCalls)
}
