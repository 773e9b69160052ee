package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carecrew/server/internal/agent/graph"
	"github.com/carecrew/server/internal/agent/graph/observers"
	"github.com/carecrew/server/internal/agent/graph/tools"
	"github.com/carecrew/server/internal/agent/model"
	"github.com/carecrew/server/internal/agent/repo"
	"github.com/carecrew/server/internal/core"
	"github.com/carecrew/server/internal/server"
	logx "github.com/carecrew/server/pkg/logger"
	pkgredis "github.com/carecrew/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Log         logx.LoggerOpts
	HTTP        server.Config

	// Infrastructure
	Redis pkgredis.Config
	// ActionStream is the Redis stream resolver actions are appended to when the redis store is used.
	ActionStream       string `envconfig:"ACTION_STREAM" default:"actions"`
	ActionStreamMaxLen int64  `envconfig:"ACTION_STREAM_MAX_LEN" default:"10000"`

	// LLM provider; a missing key only fails completions
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	StageModel   model.StageModelConfig
	ReviewModel  model.ReviewModelConfig
	Pipeline     model.PipelineConfig
	Conversation model.ConversationConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	envCfg.Log.Environment = core.ParseEnvironment(envCfg.Environment)
	logx.Init(envCfg.Log)

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("value", envCfg.Conversation.TTL).Msg("Invalid CONVERSATION_TTL")
	}

	var (
		conversationRepo model.ConversationRepository
		actionSink       tools.ActionSink = tools.LogActionSink{}
	)
	switch envCfg.Conversation.Store {
	case "redis":
		rdb, err := envCfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		logx.Info().Msg("Connected to Redis successfully")

		conversationRepo = repo.NewRedisConversationRepository(rdb, envCfg.Redis.KeyPrefix, ttl, envCfg.Conversation.MaxHistory)
		actionSink = tools.NewRedisActionSink(rdb, envCfg.Redis.KeyPrefix+":"+envCfg.ActionStream, envCfg.ActionStreamMaxLen)
	case "memory", "":
		conversationRepo = repo.NewMemoryConversationRepository(ttl, envCfg.Conversation.MaxHistory)
	default:
		logx.Fatal().Str("value", envCfg.Conversation.Store).Msg("Unknown CONVERSATION_STORE, expected memory or redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	service, err := graph.BuildChatService(ctx, graph.Config{
		APIKey:           envCfg.APIKey,
		BaseURL:          envCfg.BaseURL,
		StageModel:       envCfg.StageModel,
		ReviewModel:      envCfg.ReviewModel,
		Pipeline:         envCfg.Pipeline,
		ConversationRepo: conversationRepo,
		ActionSink:       actionSink,
		Metrics:          observers.NewMetrics(reg),
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build chat service")
	}

	srv := server.New(envCfg.HTTP, service, reg)

	logx.Info().
		Str("environment", envCfg.Log.Environment.String()).
		Str("store", envCfg.Conversation.Store).
		Str("mode", envCfg.Pipeline.Mode).
		Msg("Starting multi-agent customer care service")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logx.Fatal().Err(err).Msg("Server stopped")
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("Error during shutdown")
		}
		logx.Info().Msg("Server stopped")
	}
}
