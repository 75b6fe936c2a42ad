package events

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/streamgenie/streamgenie-go/internal/constants"
	"github.com/streamgenie/streamgenie-go/internal/domain"
	"github.com/streamgenie/streamgenie-go/internal/prompt"
	"github.com/streamgenie/streamgenie-go/internal/service/ai"
	"github.com/streamgenie/streamgenie-go/internal/service/search"
	"github.com/streamgenie/streamgenie-go/internal/util"
	"github.com/streamgenie/streamgenie-go/pkg/errors"
	"go.uber.org/zap"
)

// Searcher collects web search results for a formulated query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchResultItem, error)
}

// TextGenerator runs one completion call against the model providers.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string, cfg ai.ModelConfig) (string, *ai.GenerateMetadata, error)
}

// Enricher improves fallback events with metadata scraped from their links.
type Enricher interface {
	EnrichFallbackEvents(ctx context.Context, events []domain.LiveEvent) []domain.LiveEvent
}

// Outcome is the result of one live-event search. NoResults marks the valid
// terminal state where the web search found nothing; it is distinct from
// failure. AIProcessed is false whenever the deterministic fallback mapping
// produced the events.
type Outcome struct {
	Events      []domain.LiveEvent
	AIProcessed bool
	NoResults   bool
}

// Service composes the three pipeline stages: query formulation, web search
// collection and structured extraction.
type Service struct {
	searcher  Searcher
	generator TextGenerator
	enricher  Enricher
	logger    *zap.Logger
}

func NewService(searcher Searcher, generator TextGenerator, enricher Enricher, logger *zap.Logger) *Service {
	return &Service{
		searcher:  searcher,
		generator: generator,
		enricher:  enricher,
		logger:    logger,
	}
}

// SearchLiveEvents runs the pipeline for one user query. A search failure is
// fatal; a completion failure or unparsable model output degrades to the
// fallback mapping and still succeeds.
func (s *Service) SearchLiveEvents(ctx context.Context, query string) (*Outcome, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, errors.NewValidationError("Query is required", "query", query)
	}
	if len(trimmed) > constants.ExtractionConfig.MaxQueryLength {
		cut := constants.ExtractionConfig.MaxQueryLength
		for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
			cut--
		}
		trimmed = trimmed[:cut]
	}

	formulated := search.FormulateQuery(trimmed)
	s.logger.Info("Live event search started",
		zap.String("query", trimmed),
		zap.String("formulated", formulated),
	)

	results, err := s.searcher.Search(ctx, formulated)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		s.logger.Info("Search returned no results", zap.String("query", trimmed))
		return &Outcome{Events: []domain.LiveEvent{}, NoResults: true}, nil
	}

	events, aiProcessed := s.extract(ctx, trimmed, results)

	s.logger.Info("Live event search completed",
		zap.String("query", trimmed),
		zap.Int("results", len(results)),
		zap.Int("events", len(events)),
		zap.Bool("ai_processed", aiProcessed),
	)

	return &Outcome{Events: events, AIProcessed: aiProcessed}, nil
}

// extract asks the model to structure the search results, degrading to the
// deterministic mapping when the call fails or its output is unparsable.
func (s *Service) extract(ctx context.Context, query string, results []domain.SearchResultItem) ([]domain.LiveEvent, bool) {
	userPrompt := prompt.BuildExtractorPrompt(prompt.ExtractorPromptVars{
		Query:   query,
		Results: results,
	})

	callCtx, cancel := context.WithTimeout(ctx, constants.ExtractionConfig.CompletionTimeout)
	defer cancel()

	raw, metadata, err := s.generator.GenerateText(callCtx, prompt.ExtractorSystemInstruction, userPrompt, ai.DefaultExtractionConfig())
	if err != nil {
		s.logger.Warn("Completion call failed, using fallback mapping",
			zap.Error(err),
			zap.Int("results", len(results)),
		)
		return s.fallback(ctx, results), false
	}

	events, parseErr := parseEventList(raw)
	if parseErr != nil {
		preview := util.Truncate(raw, 200)
		s.logger.Warn("Model output unparsable, using fallback mapping",
			zap.Error(parseErr),
			zap.String("provider", metadata.Provider),
			zap.String("response_preview", preview),
		)
		return s.fallback(ctx, results), false
	}

	s.logger.Debug("Extraction parsed",
		zap.String("provider", metadata.Provider),
		zap.String("model", metadata.Model),
		zap.Bool("provider_fallback", metadata.UsedFallback),
		zap.Int("events", len(events)),
	)

	return events, true
}

func (s *Service) fallback(ctx context.Context, results []domain.SearchResultItem) []domain.LiveEvent {
	events := fallbackEvents(results)
	if s.enricher != nil {
		events = s.enricher.EnrichFallbackEvents(ctx, events)
	}
	return events
}
