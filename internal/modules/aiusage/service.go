package aiusage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyage/internal/modules/itinerary"
)

type ledger interface {
	Insert(ctx context.Context, r Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

type counters interface {
	Observe(ctx context.Context, provider string, failed []string) error
	Snapshot(ctx context.Context, providers []string) (map[string]ProviderStats, error)
}

var _ itinerary.Recorder = (*Service)(nil)

// Service records generation outcomes. Either backend may be absent.
type Service struct {
	ledger   ledger
	counters counters
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the optional Postgres store and Redis counter.
func NewService(store *Store, counter *Counter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{logger: logger.Named("aiusage"), now: time.Now}
	if store != nil {
		s.ledger = store
	}
	if counter != nil {
		s.counters = counter
	}
	return s
}

// Enabled reports whether any backend is configured.
func (s *Service) Enabled() bool {
	return s.ledger != nil || s.counters != nil
}

// Record implements itinerary.Recorder. Both backends are attempted even if
// the first one fails.
func (s *Service) Record(ctx context.Context, o itinerary.Outcome) error {
	var errs []error
	if s.ledger != nil {
		rec := Record{
			ID:         uuid.New(),
			Kind:       string(o.Kind),
			Provider:   o.Provider,
			Attempts:   o.Attempts,
			Failed:     o.Failed,
			Fallback:   o.Fallback,
			DurationMs: o.DurationMs,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.ledger.Insert(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	if s.counters != nil {
		if err := s.counters.Observe(ctx, o.Provider, o.Failed); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Summary returns recent ledger rows and counters for the named providers.
func (s *Service) Summary(ctx context.Context, limit int, providers []string) (*Summary, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	sum := &Summary{Recent: []Record{}, Providers: map[string]ProviderStats{}}
	if s.ledger != nil {
		recent, err := s.ledger.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		sum.Recent = recent
	}
	if s.counters != nil {
		stats, err := s.counters.Snapshot(ctx, providers)
		if err != nil {
			return nil, err
		}
		sum.Providers = stats
	}
	return sum, nil
}
