package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/modules/itinerary"
)

func TestRunAll_AgainstMockOnlyServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := httptransport.NewRouter(httptransport.RouterDeps{
		Itineraries: itinerary.NewService(nil, nil, itinerary.Options{}),
		AI:          config.AIConfig{ProviderOrder: []string{"openai", "gemini"}},
		CORSOrigins: []string{"*"},
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	var out bytes.Buffer
	runner := NewRunner(Config{BaseURL: srv.URL, Concurrency: 2, Duration: 50 * time.Millisecond}, &out)
	results := runner.RunAll(context.Background())

	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	assert.Equal(t, StatusSkip, byName["Env: Postgres connect"].Status)
	assert.Equal(t, StatusSkip, byName["Usage: summary"].Status)
	for _, name := range []string{
		"API: health",
		"API: check-env reports lengths only",
		"Generate: demo profile",
		"Generate: quoted budget accepted",
		"Generate: malformed body -> 500",
		"Refine: empty instruction -> 400",
		"Refine: non-object itinerary -> 400",
		"Refine: mock itinerary",
		"Chat: full intake",
		"Load: generate itinerary",
	} {
		assert.Equal(t, StatusPass, byName[name].Status, "%s: %s", name, byName[name].Note)
	}

	s := summarize(results)
	assert.Zero(t, s.fail, out.String())
}

func TestSummarize(t *testing.T) {
	s := summarize([]Result{{Status: StatusPass}, {Status: StatusFail}, {Status: StatusSkip}, {Status: StatusSkip}})
	require.Equal(t, summary{pass: 1, fail: 1, skip: 2}, s)
}

func TestSummaryVerdict(t *testing.T) {
	cases := []struct {
		name   string
		s      summary
		strict bool
		want   string
	}{
		{"all pass", summary{pass: 3}, true, ""},
		{"skips tolerated", summary{pass: 3, skip: 2}, false, ""},
		{"strict skips", summary{pass: 3, skip: 2}, true, "2 case(s) skipped in strict mode"},
		{"failures", summary{pass: 1, fail: 2, skip: 1}, false, "2 case(s) failed"},
		{"strict failures and skips", summary{fail: 1, skip: 3}, true, "1 case(s) failed, 3 skipped in strict mode"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.verdict(tc.strict)
			if tc.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.want)
		})
	}
}
