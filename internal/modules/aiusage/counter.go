package aiusage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const counterKeyPrefix = "voyage:provider:"

// Counter keeps per-provider success/failure totals in Redis hashes.
type Counter struct {
	rdb *redis.Client
}

func NewCounter(rdb *redis.Client) *Counter {
	return &Counter{rdb: rdb}
}

// Observe adds one success for provider and one failure for each failed name.
func (c *Counter) Observe(ctx context.Context, provider string, failed []string) error {
	pipe := c.rdb.TxPipeline()
	pipe.HIncrBy(ctx, counterKeyPrefix+provider, "success", 1)
	for _, name := range failed {
		pipe.HIncrBy(ctx, counterKeyPrefix+name, "failure", 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis observe: %w", err)
	}
	return nil
}

// Snapshot reads the counters for the named providers. Providers never seen
// are reported with zero counts.
func (c *Counter) Snapshot(ctx context.Context, providers []string) (map[string]ProviderStats, error) {
	pipe := c.rdb.Pipeline()
	cmds := make(map[string]*redis.MapStringStringCmd, len(providers))
	for _, name := range providers {
		cmds[name] = pipe.HGetAll(ctx, counterKeyPrefix+name)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("redis snapshot: %w", err)
	}

	out := make(map[string]ProviderStats, len(providers))
	for name, cmd := range cmds {
		var stats ProviderStats
		if err := cmd.Scan(&stats); err != nil {
			return nil, fmt.Errorf("redis scan %s: %w", name, err)
		}
		out[name] = stats
	}
	return out, nil
}
