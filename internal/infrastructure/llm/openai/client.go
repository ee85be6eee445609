// Package openai provides an LLMClient implementation using an
// OpenAI-compatible chat-completion endpoint.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/infrastructure/config"
)

const intentPrompt = `You are a Pokédex assistant. Parse the user's question about a pokemon and extract its structured intent.

Return ONLY a valid JSON object with exactly these keys, no other text:
{"pokemon_name": "lowercase English pokemon name", "original_name": "the name as the user wrote it", "intent_type": "one of basic_info, stats, evolution, intro or similar", "detail_level": "low, normal or high"}

If you cannot recognize a pokemon name in the question, set pokemon_name to an empty string.`

const answerPrompt = `You are a Pokédex expert. Answer the user's question using ONLY the data provided below. Requirements:
1. Start with a one-sentence summary
2. Then state the key facts (types, base stats, abilities)
3. Include evolution information only if the question is about evolution
4. Never invent data that is not in the provided JSON
5. Answer in the language of locale %q, as one concise paragraph of at most 200 characters

User question: %s

Pokemon data: %s
Species data: %s
%s`

// Bounded decoding: low temperature for stable JSON, capped completion
// length to control token cost.
const (
	samplingTemperature = 0.1
	maxIntentTokens     = 256
	maxAnswerTokens     = 800
)

// Client implements the LLMClient interface using a chat-completion API.
type Client struct {
	client *openai.Client
	model  string
	locale string
}

// NewClient creates a new chat-completion LLM client.
func NewClient(cfg config.LLMConfig, locale string) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("LLM API key is required")
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}
	if locale == "" {
		locale = "en"
	}

	return &Client{
		client: openai.NewClientWithConfig(cc),
		model:  model,
		locale: locale,
	}, nil
}

// ExtractIntent parses a free-text question into a structured intent.
func (c *Client) ExtractIntent(ctx context.Context, question string) (entities.Intent, error) {
	content, err := c.chat(ctx, intentPrompt, "User question: "+question+"\nOutput only the JSON:", maxIntentTokens)
	if err != nil {
		return entities.Intent{}, err
	}

	content = cleanJSONResponse(content)

	var intent entities.Intent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return entities.Intent{}, &entities.IntentParseError{Raw: content, Err: err}
	}
	intent.PokemonName = entities.NormalizeName(intent.PokemonName)
	return intent, nil
}

// SynthesizeAnswer generates a grounded answer from the projected data.
// Errors surface to the caller, which applies the deterministic fallback.
func (c *Client) SynthesizeAnswer(ctx context.Context, question string, pokemon entities.PokemonSummary, species entities.SpeciesSummary, evolution []string) (string, error) {
	pokemonJSON, err := json.Marshal(pokemon)
	if err != nil {
		return "", fmt.Errorf("marshaling pokemon summary: %w", err)
	}
	speciesJSON, err := json.Marshal(species)
	if err != nil {
		return "", fmt.Errorf("marshaling species summary: %w", err)
	}

	evolutionLine := ""
	if len(evolution) > 0 {
		evolutionLine = "Evolution line: " + strings.Join(evolution, " -> ")
	}

	system := fmt.Sprintf(answerPrompt, c.locale, question, pokemonJSON, speciesJSON, evolutionLine)

	answer, err := c.chat(ctx, system, "Answer the user's question based on the data above:", maxAnswerTokens)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// chat performs one system+user chat-completion call.
func (c *Client) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: samplingTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", &entities.UpstreamError{Detail: "chat completion: " + err.Error(), Unavailable: true}
	}

	if len(resp.Choices) == 0 {
		return "", &entities.UpstreamError{Detail: "chat completion: empty choice list"}
	}
	return resp.Choices[0].Message.Content, nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
