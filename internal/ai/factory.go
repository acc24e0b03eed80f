package ai

import (
	"context"

	"go.uber.org/zap"

	"voyage/internal/config"
)

// BuildProviders constructs the providers named in cfg.ProviderOrder, in that
// order, skipping any whose API key is missing. The returned func releases
// client resources.
func BuildProviders(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) ([]LLMProvider, func(), error) {
	var (
		providers []LLMProvider
		closers   []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	seen := make(map[string]bool)
	for _, name := range cfg.ProviderOrder {
		if seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case OpenAIName:
			if cfg.OpenAIKey == "" {
				logger.Info("provider skipped: OPENAI_API_KEY not set", zap.String("provider", name))
				continue
			}
			p, err := NewOpenAIProvider(OpenAIConfig{
				APIKey:  cfg.OpenAIKey,
				Model:   cfg.OpenAIModel,
				BaseURL: cfg.OpenAIBaseURL,
				Timeout: cfg.Timeout,
			})
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			providers = append(providers, p)
		case GeminiName:
			if cfg.GeminiKey == "" {
				logger.Info("provider skipped: GEMINI_API_KEY not set", zap.String("provider", name))
				continue
			}
			p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
			if err != nil {
				closeAll()
				return nil, nil, err
			}
			providers = append(providers, p)
			closers = append(closers, p.Close)
		default:
			logger.Warn("unknown provider in order, ignoring", zap.String("provider", name))
		}
	}
	return providers, closeAll, nil
}
