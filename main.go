package main

import (
	"context"
	"log"
	"time"

	"github.com/krishigpt/server/internal/advisor"
	"github.com/krishigpt/server/internal/advisor/history"
	"github.com/krishigpt/server/internal/advisor/llm"
	"github.com/krishigpt/server/internal/advisor/media"
	"github.com/krishigpt/server/internal/advisor/model"
	"github.com/krishigpt/server/internal/advisor/prompts"
	"github.com/krishigpt/server/internal/core"
	"github.com/krishigpt/server/internal/kb"
	"github.com/krishigpt/server/internal/server"
	logx "github.com/krishigpt/server/pkg/logger"
	pkgredis "github.com/krishigpt/server/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig defines all configurable parameters for the service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Engine configs
	LLM          model.LLMConfig
	Conversation model.ConversationConfig
	Knowledge    model.KnowledgeConfig

	// Media pipelines
	VisionModel string `envconfig:"VISION_MODEL"`

	// Transport
	Server server.Config
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", envCfg.Conversation.TTL).Msg("invalid CONVERSATION_TTL")
	}
	retryDelay, err := time.ParseDuration(envCfg.LLM.RetryDelay)
	if err != nil {
		logx.Fatal().Err(err).Str("delay", envCfg.LLM.RetryDelay).Msg("invalid LLM_RETRY_DELAY")
	}

	// Conversation history is fail-open: an unreachable Redis degrades to
	// process memory instead of blocking startup.
	var backend history.Backend
	rdb, err := envCfg.Redis.NewLenient()
	if err != nil {
		logx.Warn().Err(err).Msg("redis config invalid, conversation history will be memory-only")
	} else {
		defer rdb.Close()
		backend = history.NewRedisBackend(rdb, ttl)
	}
	store := history.New(backend, envCfg.Conversation.MaxTurns)

	// The process must not serve traffic without a callable model.
	client := llm.NewClient(envCfg.LLM.APIKey, envCfg.LLM.BaseURL)
	selector := &llm.Selector{
		Override:  envCfg.LLM.Model,
		CachePath: envCfg.LLM.ModelCachePath,
		Probe:     client.Probe,
	}
	modelID, err := selector.Select(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("model selection failed, refusing to serve")
	}

	kbase := kb.Load(envCfg.Knowledge.CropDataPath)
	systemPrompt := prompts.LoadSystemPrompt(envCfg.Knowledge.SystemPromptPath)

	engine := advisor.New(advisor.Config{
		KB:           kbase,
		Store:        store,
		Completer:    client,
		Model:        modelID,
		SystemPrompt: systemPrompt,
		Sampling: llm.SamplingConfig{
			Temperature: envCfg.LLM.Temperature,
			TopP:        envCfg.LLM.TopP,
			MaxTokens:   envCfg.LLM.MaxTokens,
		},
		MaxRetries: envCfg.LLM.MaxRetries,
		RetryDelay: retryDelay,
	})

	mediaClient := media.NewClient(envCfg.LLM.APIKey, envCfg.LLM.BaseURL, envCfg.VisionModel)

	srv := server.New(envCfg.Server, engine, mediaClient)
	logx.Info().
		Int("port", envCfg.Server.Port).
		Str("model", modelID).
		Str("environment", envCfg.Environment).
		Msg("KrishiGPT server listening")
	if err := srv.Start(envCfg.Server.Port); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
