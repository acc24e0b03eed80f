// README: Bench cases; environment, API contract, chat walkthrough and a generation load run.
package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"voyage/internal/config"
	"voyage/internal/infra"
	"voyage/internal/modules/intake"
	"voyage/internal/modules/itinerary"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	out   io.Writer
	httpc *http.Client
	db    *sql.DB
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config, out io.Writer) *Runner {
	return &Runner{
		cfg:   cfg,
		out:   out,
		httpc: &http.Client{Timeout: 3 * time.Minute},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Fprintf(r.out, "%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
	}

	if r.db != nil {
		_ = r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func pass(note string) Result { return Result{Status: StatusPass, Note: note} }
func fail(note string) Result { return Result{Status: StatusFail, Note: note} }
func skip(note string) Result { return Result{Status: StatusSkip, Note: note} }

func (r *Runner) cases() []TestCase {
	return []TestCase{
		{Name: "Env: Postgres connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.cfg.DSN == "" {
				return skip("no dsn")
			}
			db, err := infra.NewDB(ctx, r.cfg.DSN)
			if err != nil {
				return fail(err.Error())
			}
			r.db = db
			return pass("")
		}},
		{Name: "Env: generation_log table exists", Run: func(ctx context.Context, r *Runner) Result {
			if r.db == nil {
				return skip("db not connected")
			}
			var exists bool
			err := r.db.QueryRowContext(ctx,
				"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
				"generation_log",
			).Scan(&exists)
			if err != nil {
				return fail(err.Error())
			}
			if !exists {
				return fail("missing table: generation_log")
			}
			return pass("")
		}},
		{Name: "Env: Redis connect", Run: func(ctx context.Context, r *Runner) Result {
			if r.cfg.RedisAddr == "" {
				return skip("no redis addr")
			}
			rdb, err := infra.NewRedis(ctx, r.cfg.RedisAddr)
			if err != nil {
				return fail(err.Error())
			}
			r.redis = rdb
			return pass("")
		}},

		{Name: "API: health", Run: func(ctx context.Context, r *Runner) Result {
			resp, err := r.do(ctx, http.MethodGet, "/health", nil, nil)
			if err != nil {
				return fail(err.Error())
			}
			return resp.expect(http.StatusOK)
		}},
		{Name: "API: check-env reports lengths only", Run: func(ctx context.Context, r *Runner) Result {
			var report config.KeyReport
			resp, err := r.do(ctx, http.MethodGet, "/api/check-env", nil, &report)
			if err != nil {
				return fail(err.Error())
			}
			if strings.Contains(string(resp.body), "prefix") {
				return fail("response exposes key prefixes")
			}
			res := resp.expect(http.StatusOK)
			res.Note = fmt.Sprintf("gemini=%t openai=%t order=%v", report.HasGeminiKey, report.HasOpenAIKey, report.ProviderOrder)
			return res
		}},

		{Name: "Generate: demo profile", Run: func(ctx context.Context, r *Runner) Result {
			var doc json.RawMessage
			resp, err := r.do(ctx, http.MethodPost, "/api/generate-itinerary", itinerary.DemoProfile(), &doc)
			if err != nil {
				return fail(err.Error())
			}
			title := itinerary.TripTitle(doc)
			if resp.status == http.StatusOK && title == "" {
				return fail("empty trip_title")
			}
			res := resp.expect(http.StatusOK)
			res.Note = fmt.Sprintf("provider=%s title=%q", resp.header.Get("X-Itinerary-Provider"), title)
			return res
		}},
		{Name: "Generate: quoted budget accepted", Run: func(ctx context.Context, r *Runner) Result {
			body := json.RawMessage(`{"travelers":"Solo","budget":"5000","vibe":"Food, Culture"}`)
			resp, err := r.do(ctx, http.MethodPost, "/api/generate-itinerary", body, nil)
			if err != nil {
				return fail(err.Error())
			}
			return resp.expect(http.StatusOK)
		}},
		{Name: "Generate: malformed body -> 500", Run: func(ctx context.Context, r *Runner) Result {
			resp, err := r.do(ctx, http.MethodPost, "/api/generate-itinerary", json.RawMessage(`"nope"`), nil)
			if err != nil {
				return fail(err.Error())
			}
			return resp.expect(http.StatusInternalServerError)
		}},
		{Name: "Refine: empty instruction -> 400", Run: func(ctx context.Context, r *Runner) Result {
			body := map[string]any{"itinerary": itinerary.MockItinerary(), "instruction": " "}
			resp, err := r.do(ctx, http.MethodPost, "/api/refine-itinerary", body, nil)
			if err != nil {
				return fail(err.Error())
			}
			return resp.expect(http.StatusBadRequest)
		}},
		{Name: "Refine: non-object itinerary -> 400", Run: func(ctx context.Context, r *Runner) Result {
			body := map[string]any{"itinerary": []string{"day 1"}, "instruction": "add a cooking class"}
			resp, err := r.do(ctx, http.MethodPost, "/api/refine-itinerary", body, nil)
			if err != nil {
				return fail(err.Error())
			}
			return resp.expect(http.StatusBadRequest)
		}},
		{Name: "Refine: mock itinerary", Run: func(ctx context.Context, r *Runner) Result {
			body := map[string]any{"itinerary": itinerary.MockItinerary(), "instruction": "add a cooking class"}
			var doc json.RawMessage
			resp, err := r.do(ctx, http.MethodPost, "/api/refine-itinerary", body, &doc)
			if err != nil {
				return fail(err.Error())
			}
			res := resp.expect(http.StatusOK)
			res.Note = fmt.Sprintf("title=%q", itinerary.TripTitle(doc))
			return res
		}},

		{Name: "Chat: full intake", Run: func(ctx context.Context, r *Runner) Result {
			return r.chatWalkthrough(ctx)
		}},

		{Name: "Usage: summary", Run: func(ctx context.Context, r *Runner) Result {
			resp, err := r.do(ctx, http.MethodGet, "/api/usage?limit=5", nil, nil)
			if err != nil {
				return fail(err.Error())
			}
			if resp.status == http.StatusServiceUnavailable {
				return skip("usage tracking disabled")
			}
			return resp.expect(http.StatusOK)
		}},

		{Name: "Load: generate itinerary", Run: func(ctx context.Context, r *Runner) Result {
			return r.loadGenerate(ctx)
		}},
	}
}

type chatTurn struct {
	intake.Turn
	Itinerary json.RawMessage `json:"itinerary"`
	Provider  string          `json:"provider"`
}

func (r *Runner) chatWalkthrough(ctx context.Context) Result {
	var turn chatTurn
	if _, err := r.do(ctx, http.MethodGet, "/api/chat/welcome", nil, &turn); err != nil {
		return fail(err.Error())
	}

	start := time.Now()
	for _, msg := range []string{"Couple", "Next spring, 5 days", "$4,000", "Food, Culture"} {
		body := map[string]any{"step": turn.Step, "answers": turn.Answers, "message": msg}
		resp, err := r.do(ctx, http.MethodPost, "/api/chat", body, &turn)
		if err != nil {
			return fail(err.Error())
		}
		if resp.status != http.StatusOK {
			return fail(fmt.Sprintf("step %s: status=%d", turn.Step, resp.status))
		}
	}
	if turn.Step != intake.StepDone || len(turn.Itinerary) == 0 {
		return fail(fmt.Sprintf("intake ended at %q without itinerary", turn.Step))
	}
	return Result{Status: StatusPass, Latency: time.Since(start), Note: "provider=" + turn.Provider}
}

func (r *Runner) loadGenerate(ctx context.Context) Result {
	if r.cfg.Duration <= 0 || r.cfg.Concurrency <= 0 {
		return skip("load disabled")
	}
	payload := itinerary.DemoProfile()
	deadline := time.Now().Add(r.cfg.Duration)

	var ok, bad, totalNanos atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.Concurrency; i++ {
		g.Go(func() error {
			for time.Now().Before(deadline) && gctx.Err() == nil {
				start := time.Now()
				resp, err := r.do(gctx, http.MethodPost, "/api/generate-itinerary", payload, nil)
				if err != nil || resp.status != http.StatusOK {
					bad.Add(1)
					continue
				}
				ok.Add(1)
				totalNanos.Add(int64(time.Since(start)))
			}
			return nil
		})
	}
	_ = g.Wait()

	if ok.Load() == 0 {
		return fail(fmt.Sprintf("no successful requests (errors=%d)", bad.Load()))
	}
	avg := time.Duration(totalNanos.Load() / ok.Load())
	rps := float64(ok.Load()) / r.cfg.Duration.Seconds()
	return Result{
		Status:  StatusPass,
		Latency: avg,
		Note:    fmt.Sprintf("ok=%d errors=%d rps=%.2f", ok.Load(), bad.Load(), rps),
	}
}

type response struct {
	status  int
	header  http.Header
	body    []byte
	latency time.Duration
}

func (resp response) expect(status int) Result {
	if resp.status != status {
		return Result{Status: StatusFail, Latency: resp.latency, Note: fmt.Sprintf("status=%d want %d", resp.status, status)}
	}
	return Result{Status: StatusPass, Latency: resp.latency}
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (r *Runner) do(ctx context.Context, method, path string, body, out any) (response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return response{}, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, reader)
	if err != nil {
		return response{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}
	res := response{status: resp.StatusCode, header: resp.Header, body: raw, latency: time.Since(start)}

	if out != nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(raw, out); err != nil {
			return res, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return res, nil
}
