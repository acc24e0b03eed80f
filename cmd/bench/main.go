// README: Smoke and load runner against a live voyage-api; prints one line per case and a summary.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"voyage/internal/config"
)

type Config struct {
	BaseURL     string
	DSN         string
	RedisAddr   string
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// Flag defaults read the environment, so .env is loaded before they are declared.
	dotenvErr := config.LoadDotEnv()
	var cfg Config
	cmd := &cobra.Command{
		Use:          "bench",
		Short:        "Run smoke and load cases against a running voyage-api",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dotenvErr != nil {
				return dotenvErr
			}
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			results := NewRunner(cfg, cmd.OutOrStdout()).RunAll(ctx)
			s := summarize(results)
			fmt.Fprintln(cmd.OutOrStdout(), "\n== Summary ==")
			fmt.Fprintf(cmd.OutOrStdout(), "PASS=%d FAIL=%d SKIP=%d\n", s.pass, s.fail, s.skip)
			return s.verdict(cfg.Strict)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "base-url", envOrDefault("VOYAGE_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	f.StringVar(&cfg.DSN, "dsn", os.Getenv("VOYAGE_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	f.StringVar(&cfg.RedisAddr, "redis", os.Getenv("VOYAGE_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	f.BoolVar(&cfg.Strict, "strict", false, "treat skipped cases as failures")
	f.DurationVar(&cfg.Timeout, "timeout", 5*time.Minute, "total timeout")
	f.IntVar(&cfg.Concurrency, "concurrency", 4, "workers for the load case")
	f.DurationVar(&cfg.Duration, "duration", 10*time.Second, "duration of the load case (0 skips it)")
	return cmd
}

type summary struct {
	pass, fail, skip int
}

func summarize(results []Result) summary {
	var s summary
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.pass++
		case StatusFail:
			s.fail++
		case StatusSkip:
			s.skip++
		}
	}
	return s
}

// verdict fails the run on any failed case, and on skipped cases in strict mode.
func (s summary) verdict(strict bool) error {
	switch {
	case s.fail > 0 && strict && s.skip > 0:
		return fmt.Errorf("%d case(s) failed, %d skipped in strict mode", s.fail, s.skip)
	case s.fail > 0:
		return fmt.Errorf("%d case(s) failed", s.fail)
	case strict && s.skip > 0:
		return fmt.Errorf("%d case(s) skipped in strict mode", s.skip)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
