package llm

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/misinform-app/articles/internal/utils"
)

// DefaultGeminiModel is used when neither the request nor GEMINI_MODEL names one.
const DefaultGeminiModel = "gemini-2.0-flash-lite"

// MultiKeyChatModel wraps multiple Gemini chat models with round-robin key rotation
// This distributes API requests across multiple keys to avoid rate limits
type MultiKeyChatModel struct {
	models   []model.BaseChatModel
	keyIndex uint64 // atomic counter for round-robin selection
}

// NewMultiKeyChatModel creates a chat model that rotates between multiple API keys
func NewMultiKeyChatModel(ctx context.Context, apiKeys []string, modelName string) (*MultiKeyChatModel, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("%w: GEMINI_API_KEYS", ErrAPIKeyNotSet)
	}

	models := make([]model.BaseChatModel, len(apiKeys))

	for i, key := range apiKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: key,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client for key %d: %w", i+1, err)
		}

		chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  modelName,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model for key %d: %w", i+1, err)
		}

		models[i] = chatModel
	}

	utils.Zlog.Info("Created multi-key chat model with round-robin rotation",
		zap.Int("key_count", len(apiKeys)),
		zap.String("model", modelName))

	return newMultiKeyChatModel(models), nil
}

func newMultiKeyChatModel(models []model.BaseChatModel) *MultiKeyChatModel {
	return &MultiKeyChatModel{models: models}
}

// getNextModel returns the next model using round-robin selection
func (m *MultiKeyChatModel) getNextModel() model.BaseChatModel {
	if len(m.models) == 1 {
		return m.models[0]
	}
	idx := atomic.AddUint64(&m.keyIndex, 1)
	return m.models[idx%uint64(len(m.models))]
}

// Generate implements model.BaseChatModel
func (m *MultiKeyChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	return m.getNextModel().Generate(ctx, input, opts...)
}

// Stream implements model.BaseChatModel
func (m *MultiKeyChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return m.getNextModel().Stream(ctx, input, opts...)
}

// GeminiProvider adapts an eino chat model to Provider.
type GeminiProvider struct {
	chatModel model.BaseChatModel
	timeout   time.Duration
}

func NewGeminiProvider(chatModel model.BaseChatModel, timeout time.Duration) *GeminiProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiProvider{chatModel: chatModel, timeout: timeout}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, messages []Message, cfg ModelConfig) (string, Usage, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	input := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "system":
			input = append(input, schema.SystemMessage(m.Content))
		case "assistant":
			input = append(input, schema.AssistantMessage(m.Content, nil))
		default:
			input = append(input, schema.UserMessage(m.Content))
		}
	}

	opts := []model.Option{model.WithTemperature(float32(cfg.Temperature))}
	if cfg.Model != "" {
		opts = append(opts, model.WithModel(cfg.Model))
	}

	out, err := p.chatModel.Generate(ctx, input, opts...)
	if err != nil {
		return "", Usage{}, fmt.Errorf("Gemini API call failed: %w", err)
	}
	if out == nil {
		return "", Usage{}, fmt.Errorf("Gemini API returned no message")
	}

	var usage Usage
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		usage = Usage{
			PromptTokens:     out.ResponseMeta.Usage.PromptTokens,
			CompletionTokens: out.ResponseMeta.Usage.CompletionTokens,
			TotalTokens:      out.ResponseMeta.Usage.TotalTokens,
		}
	}
	return out.Content, usage, nil
}

var _ Provider = (*GeminiProvider)(nil)
