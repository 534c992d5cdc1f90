// Package fill asks a text-generation provider to fill a JSON stub and
// recovers the resulting object from the model output.
package fill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/apperrors"
	"github.com/misinform-app/articles/internal/extract"
	"github.com/misinform-app/articles/internal/llm"
	"github.com/misinform-app/articles/internal/metrics"
	"github.com/misinform-app/articles/internal/utils"
)

const (
	DefaultTemperature = 0.7
	DefaultMaxRetries  = 2

	// BaseBackoff is the wait after the first failed attempt; it doubles per attempt.
	BaseBackoff = 800 * time.Millisecond
)

// FilledContent is the JSON object produced by the model.
type FilledContent = map[string]any

// Request is one fill call. Model may be empty.
type Request struct {
	Topic       string
	StubText    string
	Model       string
	Temperature float64
	MaxRetries  int
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Filler runs the bounded retry loop around a provider call.
type Filler struct {
	source        llm.Source
	defaultModel  string
	fallbackModel string
	sleep         Sleeper
}

type Option func(*Filler)

// WithDefaultModel sets the process-wide model used when a request names none.
func WithDefaultModel(model string) Option {
	return func(f *Filler) { f.defaultModel = model }
}

// WithFallbackModel sets the model used when neither the request nor the
// process default names one.
func WithFallbackModel(model string) Option {
	return func(f *Filler) { f.fallbackModel = model }
}

// WithSleeper replaces the backoff wait.
func WithSleeper(s Sleeper) Option {
	return func(f *Filler) { f.sleep = s }
}

func NewFiller(source llm.Source, opts ...Option) *Filler {
	f := &Filler{
		source:        source,
		fallbackModel: llm.DefaultOpenAIModel,
		sleep:         sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Backoff returns the wait after failed attempt number attempt (0-based).
func Backoff(attempt int) time.Duration {
	return BaseBackoff << attempt
}

// ResolveModel picks the request override, then the process default, then the fallback.
func (f *Filler) ResolveModel(override string) string {
	switch {
	case override != "":
		return override
	case f.defaultModel != "":
		return f.defaultModel
	default:
		return f.fallbackModel
	}
}

// Fill makes up to req.MaxRetries+1 attempts. Missing credentials fail
// immediately with a configuration error; exhausting every attempt fails
// with a model error wrapping the last cause.
func (f *Filler) Fill(ctx context.Context, req Request) (FilledContent, error) {
	provider, err := f.source.Provider(ctx)
	if err != nil {
		if errors.Is(err, llm.ErrAPIKeyNotSet) {
			return nil, apperrors.NewConfigurationError(err.Error())
		}
		return nil, apperrors.NewModelError(err)
	}

	maxRetries := req.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	prompt := BuildPrompt(req.Topic, req.StubText)
	modelCfg := llm.ModelConfig{
		Model:       f.ResolveModel(req.Model),
		Temperature: req.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		content, err := f.attempt(ctx, provider, prompt, modelCfg)
		if err == nil {
			utils.Zlog.Info("Template filled",
				zap.String("provider", provider.Name()),
				zap.String("model", modelCfg.Model),
				zap.Int("attempt", attempt+1))
			return content, nil
		}

		lastErr = err
		utils.Zlog.Warn("Fill attempt failed",
			zap.String("provider", provider.Name()),
			zap.String("model", modelCfg.Model),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxRetries+1),
			zap.Error(err))

		if attempt < maxRetries {
			if err := f.sleep(ctx, Backoff(attempt)); err != nil {
				lastErr = fmt.Errorf("%w (backoff interrupted: %v)", lastErr, err)
				break
			}
		}
	}

	return nil, apperrors.NewModelError(lastErr)
}

func (f *Filler) attempt(ctx context.Context, provider llm.Provider, prompt string, cfg llm.ModelConfig) (FilledContent, error) {
	start := time.Now()
	defer func() {
		metrics.GenerationDuration.WithLabelValues(provider.Name()).Observe(time.Since(start).Seconds())
	}()

	raw, usage, err := provider.Generate(ctx, llm.UserPrompt(prompt), cfg)
	if err != nil {
		metrics.GenerationAttempts.WithLabelValues(provider.Name(), "provider_error").Inc()
		return nil, err
	}
	utils.Zlog.Debug("Model output received",
		zap.Int("output_chars", len(raw)),
		zap.Int("total_tokens", usage.TotalTokens))

	content, err := Decode(raw)
	if err != nil {
		metrics.GenerationAttempts.WithLabelValues(provider.Name(), "extraction_error").Inc()
		return nil, err
	}

	metrics.GenerationAttempts.WithLabelValues(provider.Name(), "success").Inc()
	return content, nil
}

// Decode extracts the first JSON object from raw model output and parses it.
// Numbers are kept as json.Number so they are re-encoded and rendered as written.
func Decode(raw string) (FilledContent, error) {
	objText, err := extract.FirstJSONObject(raw)
	if err != nil {
		return nil, apperrors.NewExtractionError(err)
	}

	dec := json.NewDecoder(strings.NewReader(objText))
	dec.UseNumber()

	var content FilledContent
	if err := dec.Decode(&content); err != nil {
		return nil, apperrors.NewExtractionError(err)
	}
	if dec.More() {
		return nil, apperrors.NewExtractionError(fmt.Errorf("trailing data after JSON object"))
	}
	if content == nil {
		return nil, apperrors.NewExtractionError(extract.ErrNoJSONObject)
	}
	return content, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
