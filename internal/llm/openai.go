package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/utils"
)

const (
	// DefaultOpenAIModel is used when neither the request nor OPENAI_MODEL names one.
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 60 * time.Second
)

// OpenAIProvider calls the OpenAI Responses API.
type OpenAIProvider struct {
	client  openai.Client
	timeout time.Duration
}

// NewOpenAIProvider builds a provider for apiKey. baseURL may be empty.
// The SDK's own retries are disabled; callers own the retry policy.
func NewOpenAIProvider(apiKey, baseURL string, timeout time.Duration) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY", ErrAPIKeyNotSet)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		timeout: timeout,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Generate sends the conversation as a single Responses API input and returns
// the concatenated output text.
func (p *OpenAIProvider) Generate(ctx context.Context, messages []Message, cfg ModelConfig) (string, Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	instructions, input := splitMessages(messages)

	params := responses.ResponseNewParams{
		Model:       model,
		Input:       responses.ResponseNewParamsInputUnion{OfString: openai.String(input)},
		Temperature: openai.Float(cfg.Temperature),
	}
	if instructions != "" {
		params.Instructions = openai.String(instructions)
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return "", Usage{}, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	usage := Usage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
	}
	utils.Zlog.Debug("OpenAI response received",
		zap.String("response_id", resp.ID),
		zap.String("model", resp.Model),
		zap.Int("total_tokens", usage.TotalTokens))

	return resp.OutputText(), usage, nil
}

var _ Provider = (*OpenAIProvider)(nil)
