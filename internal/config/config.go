package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	LogLevel       string
	Debug          bool
	ServiceName    string
	Environment    string
	Hostname       string
	ServerPort     string
	AllowedOrigins []string

	// LLM
	LLMProvider          string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	GeminiAPIKeys        []string
	GeminiModel          string
	LLMMaxRetries        int
	LLMTimeout           time.Duration
	LLMRequestsPerMinute int

	// Read-only inputs
	TemplatesDir string
	StubsDir     string
}

// LoadConfig reads the configuration from the environment. API keys are
// optional here: a missing key only fails the requests that need it.
func LoadConfig() (*Config, error) {
	logLevel := getEnv("LOG_LEVEL", "info")
	debug := getEnv("DEBUG", "false")
	serviceName := getEnv("SERVICE_NAME", "misinform-articles")
	hostname := getEnv("HOSTNAME", "misinform-articles")
	environment := getEnv("ENVIRONMENT", "development")
	serverPort := getEnv("SERVER_PORT", "8000")

	allowedOrigins := []string{"*"}
	if ao := os.Getenv("ALLOWED_ORIGINS"); ao != "" {
		allowedOrigins = splitList(ao)
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderGemini {
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, provider)
	}

	maxRetries := 2
	if v := os.Getenv("LLM_MAX_RETRIES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("LLM_MAX_RETRIES must be a non-negative integer, got %q", v)
		}
		maxRetries = parsed
	}

	timeout := 60 * time.Second
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("LLM_TIMEOUT must be a positive duration, got %q", v)
		}
		timeout = parsed
	}

	rpm := 0 // unlimited
	if v := os.Getenv("LLM_REQUESTS_PER_MINUTE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			rpm = parsed
		}
	}

	return &Config{
		LogLevel:             logLevel,
		Debug:                debug == "true",
		ServiceName:          serviceName,
		Hostname:             hostname,
		Environment:          environment,
		ServerPort:           serverPort,
		AllowedOrigins:       allowedOrigins,
		LLMProvider:          provider,
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:          os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKeys:        splitList(os.Getenv("GEMINI_API_KEYS")),
		GeminiModel:          os.Getenv("GEMINI_MODEL"),
		LLMMaxRetries:        maxRetries,
		LLMTimeout:           timeout,
		LLMRequestsPerMinute: rpm,
		TemplatesDir:         getEnv("TEMPLATES_DIR", "templates/empty"),
		StubsDir:             getEnv("STUBS_DIR", "templates/jsons"),
	}, nil
}

// DefaultModel returns the process-wide model for the selected provider, or
// "" when none is configured.
func (c *Config) DefaultModel() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiModel
	}
	return c.OpenAIModel
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated value and drops empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
