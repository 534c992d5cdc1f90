package llm

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/config"
	"github.com/misinform-app/articles/internal/utils"
)

// Source hands out the provider for a request. It fails with an error
// wrapping ErrAPIKeyNotSet when credentials are missing.
type Source interface {
	Provider(ctx context.Context) (Provider, error)
}

// ConfigSource builds the configured provider on first use and reuses it.
// A missing key is remembered; any other build failure is retried on the
// next call.
type ConfigSource struct {
	cfg   *config.Config
	build func(ctx context.Context) (Provider, error)

	mu       sync.Mutex
	provider Provider
	err      error
}

func NewConfigSource(cfg *config.Config) *ConfigSource {
	s := &ConfigSource{cfg: cfg}
	s.build = s.buildFromConfig
	return s
}

func (s *ConfigSource) Provider(ctx context.Context) (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider != nil || s.err != nil {
		return s.provider, s.err
	}

	provider, err := s.build(context.WithoutCancel(ctx))
	if err != nil {
		utils.Zlog.Warn("LLM provider unavailable",
			zap.String("provider", s.cfg.LLMProvider),
			zap.Error(err))
		if errors.Is(err, ErrAPIKeyNotSet) {
			s.err = err
		}
		return nil, err
	}

	s.provider = provider
	return provider, nil
}

// Configured reports whether credentials for the selected provider are present.
func (s *ConfigSource) Configured() bool {
	if s.cfg.LLMProvider == config.ProviderGemini {
		return len(s.cfg.GeminiAPIKeys) > 0
	}
	return s.cfg.OpenAIAPIKey != ""
}

func (s *ConfigSource) buildFromConfig(ctx context.Context) (Provider, error) {
	var provider Provider

	switch s.cfg.LLMProvider {
	case config.ProviderGemini:
		modelName := s.cfg.GeminiModel
		if modelName == "" {
			modelName = DefaultGeminiModel
		}
		chatModel, err := NewMultiKeyChatModel(ctx, s.cfg.GeminiAPIKeys, modelName)
		if err != nil {
			return nil, err
		}
		provider = NewGeminiProvider(chatModel, s.cfg.LLMTimeout)
	default:
		p, err := NewOpenAIProvider(s.cfg.OpenAIAPIKey, s.cfg.OpenAIBaseURL, s.cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	if s.cfg.LLMRequestsPerMinute > 0 {
		provider = NewRateLimitedProvider(provider, NewRateLimiterPool(s.cfg.LLMRequestsPerMinute))
	}
	return provider, nil
}

// StaticSource always returns the same provider.
type StaticSource struct {
	P Provider
}

func (s StaticSource) Provider(context.Context) (Provider, error) {
	return s.P, nil
}
