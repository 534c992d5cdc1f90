package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/misinform-app/articles/internal/api/articles"
	"github.com/misinform-app/articles/internal/config"
	"github.com/misinform-app/articles/internal/fill"
	"github.com/misinform-app/articles/internal/llm"
	"github.com/misinform-app/articles/internal/routes"
	"github.com/misinform-app/articles/internal/templates"
	"github.com/misinform-app/articles/internal/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("Warning: Error loading .env file", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	cleanup := utils.InitLogger(cfg)
	defer cleanup()

	utils.Zlog.Info("Starting application",
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort),
		zap.String("llm_provider", cfg.LLMProvider))

	renderer, err := templates.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		utils.Zlog.Error("Failed to create template renderer", zap.Error(err))
		os.Exit(1)
	}
	stubs := templates.NewStubLoader(cfg.StubsDir)

	source := llm.NewConfigSource(cfg)
	if !source.Configured() {
		utils.Zlog.Warn("LLM credentials are not set; generation requests will fail",
			zap.String("llm_provider", cfg.LLMProvider))
	}

	fillerOpts := []fill.Option{fill.WithDefaultModel(cfg.DefaultModel())}
	if cfg.LLMProvider == config.ProviderGemini {
		fillerOpts = append(fillerOpts, fill.WithFallbackModel(llm.DefaultGeminiModel))
	}
	filler := fill.NewFiller(source, fillerOpts...)

	svc := articles.NewService(filler, stubs, renderer, cfg.LLMMaxRetries)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, cfg, routes.Dependencies{
		Articles:     svc,
		Provider:     source,
		TemplatesDir: renderer.Dir(),
		StubsDir:     stubs.Dir(),
	})

	// The write timeout covers every attempt plus backoff.
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Zlog.Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		utils.Zlog.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	utils.Zlog.Info("Server exited")
}

func writeTimeout(cfg *config.Config) time.Duration {
	attempts := cfg.LLMMaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	var backoff time.Duration
	for i := 0; i < attempts-1; i++ {
		backoff += fill.Backoff(i)
	}
	return time.Duration(attempts)*cfg.LLMTimeout + backoff + 15*time.Second
}
