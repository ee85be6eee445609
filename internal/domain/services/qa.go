package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/ports"
)

// clarificationAnswer is returned when intent extraction cannot name a
// pokemon. A normal terminal outcome, not an error.
const clarificationAnswer = "I couldn't tell which pokemon you're asking about. Please try again with a specific pokemon name."

// QAService orchestrates one question-answer cycle:
// intent extraction, data resolution, answer synthesis, assembly.
type QAService struct {
	llm     ports.LLMClient
	pokemon *PokemonService
	cache   ports.RecordCache
	locale  string
	logger  *zap.Logger
}

// NewQAService creates a new question-answering service.
func NewQAService(llm ports.LLMClient, pokemon *PokemonService, cache ports.RecordCache, locale string, logger *zap.Logger) *QAService {
	if locale == "" {
		locale = "en"
	}
	return &QAService{
		llm:     llm,
		pokemon: pokemon,
		cache:   cache,
		locale:  locale,
		logger:  logger,
	}
}

// Answer runs the full pipeline for one question. Intent-parse failures
// and resolution failures abort the request; synthesis failures do not.
func (s *QAService) Answer(ctx context.Context, question string) (*entities.Answer, error) {
	intent, err := s.llm.ExtractIntent(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("extracting intent: %w", err)
	}

	if intent.PokemonName == "" {
		s.logQuestion(ctx, question, intent)
		return &entities.Answer{
			Answer: clarificationAnswer,
			Intent: &intent,
		}, nil
	}

	// Both records must resolve before synthesis; no partial answers.
	var pokemonPayload, speciesPayload []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pokemonPayload, err = s.pokemon.GetPokemon(gctx, intent.PokemonName)
		return err
	})
	g.Go(func() error {
		var err error
		speciesPayload, err = s.pokemon.GetSpecies(gctx, intent.PokemonName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary, err := entities.SummarizePokemon(pokemonPayload)
	if err != nil {
		return nil, err
	}
	species, err := entities.SummarizeSpecies(speciesPayload, s.locale)
	if err != nil {
		return nil, err
	}

	evolution := s.evolutionLine(ctx, intent, speciesPayload)

	answer, err := s.llm.SynthesizeAnswer(ctx, question, summary, species, evolution)
	if err != nil {
		s.logger.Warn("answer synthesis failed, using fallback",
			zap.String("pokemon", intent.PokemonName),
			zap.Error(err))
		answer = entities.FallbackAnswer(summary)
	}

	id, name := entities.PayloadIdentity(pokemonPayload)
	s.logQuestion(ctx, question, intent)

	return &entities.Answer{
		Answer:      answer,
		PokemonName: &name,
		PokemonID:   &id,
		Intent:      &intent,
	}, nil
}

// evolutionLine fetches the species' evolution chain when the question
// is about evolution. Best-effort: any failure yields no chain context.
func (s *QAService) evolutionLine(ctx context.Context, intent entities.Intent, speciesPayload []byte) []string {
	if intent.IntentType != entities.IntentEvolution {
		return nil
	}

	chainID, ok := entities.EvolutionChainID(speciesPayload)
	if !ok {
		return nil
	}

	chain, err := s.pokemon.GetEvolutionChain(ctx, chainID)
	if err != nil {
		s.logger.Warn("evolution chain fetch failed",
			zap.Int("chain_id", chainID),
			zap.Error(err))
		return nil
	}

	names, err := entities.EvolutionSpecies(chain)
	if err != nil {
		s.logger.Warn("evolution chain parse failed",
			zap.Int("chain_id", chainID),
			zap.Error(err))
		return nil
	}
	return names
}

// logQuestion appends to the question log. Best-effort.
func (s *QAService) logQuestion(ctx context.Context, question string, intent entities.Intent) {
	if err := s.cache.LogQuestion(ctx, question, intent.PokemonName, intent.IntentType); err != nil {
		s.logger.Warn("question log write failed", zap.Error(err))
	}
}
