// Package integration exercises the full pipeline over fake upstreams:
// a fake PokeAPI, a fake chat-completion endpoint, and a real SQLite
// cache. No network or API keys required.
package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/dex-core/internal/application/handlers"
	"github.com/ersonp/dex-core/internal/domain/services"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
	llm "github.com/ersonp/dex-core/internal/infrastructure/llm/openai"
	"github.com/ersonp/dex-core/internal/infrastructure/pokeapi"
	"github.com/ersonp/dex-core/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/dex-core/internal/transport/httpapi"
)

const charizardPayload = `{
	"id": 6,
	"name": "charizard",
	"height": 17,
	"weight": 905,
	"types": [{"type": {"name": "fire"}}, {"type": {"name": "flying"}}],
	"stats": [{"base_stat": 78, "stat": {"name": "hp"}}, {"base_stat": 84, "stat": {"name": "attack"}}],
	"abilities": [{"is_hidden": false, "ability": {"name": "blaze"}}],
	"moves": [{"move": {"name": "flamethrower"}}]
}`

const charizardSpeciesPayload = `{
	"id": 6,
	"name": "charizard",
	"capture_rate": 45,
	"base_happiness": 50,
	"growth_rate": {"name": "medium-slow"},
	"egg_groups": [{"name": "monster"}, {"name": "dragon"}],
	"color": {"name": "red"},
	"flavor_text_entries": [{"flavor_text": "Spits fire.", "language": {"name": "en"}}],
	"evolution_chain": {"url": "https://pokeapi.co/api/v2/evolution-chain/2/"}
}`

const charizardChainPayload = `{
	"id": 2,
	"chain": {
		"species": {"name": "charmander"},
		"evolves_to": [{"species": {"name": "charmeleon"}, "evolves_to": [{"species": {"name": "charizard"}, "evolves_to": []}]}]
	}
}`

// fixture wires the whole pipeline against fake upstream servers.
type fixture struct {
	server *httpapi.Server
	cache  *sqlite.Repository

	pokeapiRequests atomic.Int64
	failSynthesis   atomic.Bool
	garbleIntent    atomic.Bool
}

// newFixture builds the pipeline. The fake LLM recognizes "喷火龙" and
// "charizard" as charizard and extracts an empty name otherwise.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}

	dataSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.pokeapiRequests.Add(1)
		switch r.URL.Path {
		case "/pokemon/charizard":
			w.Write([]byte(charizardPayload))
		case "/pokemon-species/charizard":
			w.Write([]byte(charizardSpeciesPayload))
		case "/evolution-chain/2":
			w.Write([]byte(charizardChainPayload))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(dataSrv.Close)

	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Messages) == 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		system := req.Messages[0].Content

		var content string
		switch {
		case strings.Contains(system, "structured intent"):
			if f.garbleIntent.Load() {
				content = "Sure, happy to help! The pokemon is charizard."
				break
			}
			question := req.Messages[len(req.Messages)-1].Content
			name := ""
			switch {
			case strings.Contains(question, "喷火龙") || strings.Contains(strings.ToLower(question), "charizard"):
				name = "charizard"
			case strings.Contains(strings.ToLower(question), "pikachu"):
				name = "pikachu"
			}
			intentType := "basic_info"
			if strings.Contains(question, "evolve") {
				intentType = "evolution"
			}
			content = `{"pokemon_name": "` + name + `", "original_name": "喷火龙", "intent_type": "` + intentType + `", "detail_level": "normal"}`
		default:
			if f.failSynthesis.Load() {
				http.Error(w, "model overloaded", http.StatusServiceUnavailable)
				return
			}
			content = "Charizard is a fire/flying pokemon with strong attack."
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(llmSrv.Close)

	cache, err := sqlite.NewRepository(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "dex.db")})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.EnsureSchema(context.Background()))

	api, err := pokeapi.NewClient(config.PokeAPIConfig{BaseURL: dataSrv.URL, TimeoutSeconds: 2})
	require.NoError(t, err)

	llmClient, err := llm.NewClient(config.LLMConfig{APIKey: "test-key", BaseURL: llmSrv.URL + "/v1"}, "en")
	require.NoError(t, err)

	logger := zap.NewNop()
	pokemonService := services.NewPokemonService(api, cache, logger)
	qaService := services.NewQAService(llmClient, pokemonService, cache, "en", logger)

	f.cache = cache
	f.server = httpapi.New(":0", handlers.NewAskHandler(qaService), logger)
	return f
}

// ask posts a question and returns the recorded response.
func (f *fixture) ask(t *testing.T, question string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"question": question})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}
