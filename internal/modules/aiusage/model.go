package aiusage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDisabled is returned by Summary when neither backend is configured.
var ErrDisabled = errors.New("usage tracking disabled")

// DefaultRecentLimit bounds how many ledger rows Summary returns.
const DefaultRecentLimit = 20

// Record is one generation run. Itinerary content is never stored.
type Record struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Provider   string    `json:"provider"`
	Attempts   int       `json:"attempts"`
	Failed     []string  `json:"failed"`
	Fallback   bool      `json:"fallback"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProviderStats counts how often a provider answered or failed.
type ProviderStats struct {
	Success int64 `json:"success" redis:"success"`
	Failure int64 `json:"failure" redis:"failure"`
}

type Summary struct {
	Recent    []Record                 `json:"recent"`
	Providers map[string]ProviderStats `json:"providers"`
}
