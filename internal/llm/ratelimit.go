package llm

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/misinform-app/articles/internal/utils"
)

// RateLimiterPool manages per-model rate limiters
type RateLimiterPool struct {
	requestsPerMinute int
	limiters          map[string]*rate.Limiter
	mu                sync.Mutex
}

// NewRateLimiterPool creates a pool that admits requestsPerMinute calls per model.
func NewRateLimiterPool(requestsPerMinute int) *RateLimiterPool {
	return &RateLimiterPool{
		requestsPerMinute: requestsPerMinute,
		limiters:          make(map[string]*rate.Limiter),
	}
}

// GetOrCreate returns the limiter for modelID, creating it on first use.
func (p *RateLimiterPool) GetOrCreate(modelID string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists := p.limiters[modelID]; exists {
		return limiter
	}

	rps := float64(p.requestsPerMinute) / 60.0
	burst := max(1, p.requestsPerMinute/5)
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	p.limiters[modelID] = limiter

	utils.Zlog.Debug("Created rate limiter",
		zap.String("model_id", modelID),
		zap.Int("rpm", p.requestsPerMinute),
		zap.Float64("rps", rps),
		zap.Int("burst", burst))

	return limiter
}

// Wait blocks until the limiter for modelID allows the next request
func (p *RateLimiterPool) Wait(ctx context.Context, modelID string) error {
	return p.GetOrCreate(modelID).Wait(ctx)
}

// RateLimitedProvider throttles calls to the wrapped provider per model.
type RateLimitedProvider struct {
	next Provider
	pool *RateLimiterPool
}

func NewRateLimitedProvider(next Provider, pool *RateLimiterPool) *RateLimitedProvider {
	return &RateLimitedProvider{next: next, pool: pool}
}

func (p *RateLimitedProvider) Name() string { return p.next.Name() }

func (p *RateLimitedProvider) Generate(ctx context.Context, messages []Message, cfg ModelConfig) (string, Usage, error) {
	if err := p.pool.Wait(ctx, cfg.Model); err != nil {
		return "", Usage{}, fmt.Errorf("rate limiter wait: %w", err)
	}
	return p.next.Generate(ctx, messages, cfg)
}

var _ Provider = (*RateLimitedProvider)(nil)
