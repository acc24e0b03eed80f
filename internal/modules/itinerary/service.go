// README: Itinerary service; tries each configured LLM provider in order and falls back to mock data.
package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"voyage/internal/ai"
	"voyage/internal/maps"
)

var (
	ErrEmptyInstruction = errors.New("refinement instruction is empty")
	ErrMissingItinerary = errors.New("current itinerary is required")
	ErrInvalidItinerary = errors.New("current itinerary must be a JSON object")
	// ErrInvalidJSON marks provider output that does not parse as JSON.
	ErrInvalidJSON = errors.New("provider returned invalid JSON")
)

// Recorder receives the outcome of every generation run.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// HighlightFinder looks up places worth suggesting to the model.
type HighlightFinder interface {
	Highlights(ctx context.Context, destination string, vibe []string) ([]maps.Place, error)
}

type Options struct {
	// MockDelay is waited before the mock itinerary is returned.
	MockDelay  time.Duration
	Highlights HighlightFinder
	Recorder   Recorder
}

// Service orchestrates provider fallback for generation and refinement.
type Service struct {
	providers  []ai.LLMProvider
	logger     *zap.Logger
	mockDelay  time.Duration
	highlights HighlightFinder
	recorder   Recorder
}

// NewService creates a Service. Providers are tried in slice order; an empty
// slice means every run ends in the mock itinerary.
func NewService(providers []ai.LLMProvider, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		providers:  providers,
		logger:     logger.Named("itinerary"),
		mockDelay:  opts.MockDelay,
		highlights: opts.Highlights,
		recorder:   opts.Recorder,
	}
}

// Providers returns the configured provider names in call order.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate produces an itinerary for the profile. Provider failures are never
// returned; the only error is a cancelled context while waiting on the mock.
func (s *Service) Generate(ctx context.Context, profile Profile) (*Result, error) {
	start := time.Now()
	s.logger.Info("generate itinerary called",
		zap.String("travelers", profile.Travelers),
		zap.String("destination", profile.Destination),
		zap.Float64("budget", profile.Budget),
		zap.Strings("providers", s.Providers()),
	)

	prompt := BuildPrompt(profile, s.lookupHighlights(ctx, profile))
	res, failed := s.firstSuccess(ctx, prompt)
	if res == nil {
		s.logger.Warn("no API keys available or all providers failed, returning mock data",
			zap.Strings("failed", failed))
		if err := s.waitMock(ctx); err != nil {
			return nil, err
		}
		doc, err := mockDocument()
		if err != nil {
			return nil, err
		}
		res = &Result{Itinerary: doc, Provider: ProviderMock, Attempts: len(failed)}
	}

	s.record(ctx, KindGenerate, res, failed, start)
	return res, nil
}

// Refine rewrites current according to instruction using the same provider
// chain. The mock fallback tags the title and replaces the overview.
func (s *Service) Refine(ctx context.Context, current json.RawMessage, instruction string) (*Result, error) {
	current = bytes.TrimSpace(current)
	if len(current) == 0 || bytes.Equal(current, []byte("null")) {
		return nil, ErrMissingItinerary
	}
	if current[0] != '{' || !json.Valid(current) {
		return nil, ErrInvalidItinerary
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, ErrEmptyInstruction
	}

	start := time.Now()
	s.logger.Info("refine itinerary called",
		zap.String("trip_title", TripTitle(current)),
		zap.String("instruction", instruction),
	)

	res, failed := s.firstSuccess(ctx, BuildRefinePrompt(current, instruction))
	if res == nil {
		s.logger.Warn("no API keys available or all providers failed, returning mock refinement",
			zap.Strings("failed", failed))
		if err := s.waitMock(ctx); err != nil {
			return nil, err
		}
		doc, err := mockRefinement(current, instruction)
		if err != nil {
			return nil, err
		}
		res = &Result{Itinerary: doc, Provider: ProviderMock, Attempts: len(failed)}
	}

	s.record(ctx, KindRefine, res, failed, start)
	return res, nil
}

// firstSuccess walks the providers and returns the first parsed itinerary.
// failed lists the providers that were called and did not produce one.
func (s *Service) firstSuccess(ctx context.Context, prompt string) (*Result, []string) {
	var failed []string
	for _, p := range s.providers {
		if ctx.Err() != nil {
			break
		}
		log := s.logger.With(zap.String("provider", p.Name()))
		log.Debug("attempting provider")

		doc, err := s.call(ctx, p, prompt)
		if err != nil {
			log.Warn("provider failed", zap.Error(err))
			failed = append(failed, p.Name())
			continue
		}
		log.Info("provider succeeded")
		return &Result{Itinerary: doc, Provider: p.Name(), Attempts: len(failed) + 1}, failed
	}
	return nil, failed
}

// call returns the provider's JSON untouched. Only syntax is checked; field
// types and missing or extra fields are the client's concern.
func (s *Service) call(ctx context.Context, p ai.LLMProvider, prompt string) (json.RawMessage, error) {
	text, err := p.GenerateJSON(ctx, SystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	doc := []byte(ai.CleanJSON(text))
	if !json.Valid(doc) {
		return nil, fmt.Errorf("parse %s response: %w", p.Name(), ErrInvalidJSON)
	}
	return json.RawMessage(doc), nil
}

func (s *Service) lookupHighlights(ctx context.Context, profile Profile) []maps.Place {
	if s.highlights == nil || strings.TrimSpace(profile.Destination) == "" {
		return nil
	}
	places, err := s.highlights.Highlights(ctx, profile.Destination, profile.Vibe)
	if err != nil {
		s.logger.Warn("highlight lookup failed", zap.String("destination", profile.Destination), zap.Error(err))
		return nil
	}
	return places
}

func (s *Service) waitMock(ctx context.Context) error {
	if s.mockDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.mockDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) record(ctx context.Context, kind Kind, res *Result, failed []string, start time.Time) {
	if s.recorder == nil {
		return
	}
	o := Outcome{
		Kind:       kind,
		Provider:   res.Provider,
		Attempts:   res.Attempts,
		Failed:     failed,
		Fallback:   len(failed) > 0 || res.Provider == ProviderMock,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := s.recorder.Record(context.WithoutCancel(ctx), o); err != nil {
		s.logger.Warn("record generation outcome", zap.Error(err))
	}
}
