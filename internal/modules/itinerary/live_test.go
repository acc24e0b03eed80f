package itinerary

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"voyage/internal/ai"
	"voyage/internal/config"
)

// TestLiveProviders calls every configured provider with the demo profile.
// It skips the test unless VOYAGE_LIVE_TEST=1.
func TestLiveProviders(t *testing.T) {
	if os.Getenv("VOYAGE_LIVE_TEST") != "1" {
		t.Skip("VOYAGE_LIVE_TEST not set; skipping calls to real LLM providers")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	logger := zaptest.NewLogger(t)
	providers, closeAll, err := ai.BuildProviders(ctx, cfg.AI, logger)
	require.NoError(t, err)
	t.Cleanup(closeAll)
	if len(providers) == 0 {
		t.Skip("no provider keys configured")
	}

	for _, p := range providers {
		t.Run(p.Name(), func(t *testing.T) {
			svc := NewService([]ai.LLMProvider{p}, logger, Options{})
			res, err := svc.Generate(ctx, DemoProfile())
			require.NoError(t, err)
			assert.Equal(t, p.Name(), res.Provider, "provider fell back to mock")
			assert.True(t, json.Valid(res.Itinerary))
			assert.NotEmpty(t, TripTitle(res.Itinerary))
		})
	}
}
