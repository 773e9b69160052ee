package graph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carecrew/server/internal/agent/graph/conversations"
	"github.com/carecrew/server/internal/agent/graph/nodes"
	"github.com/carecrew/server/internal/agent/graph/observers"
	"github.com/carecrew/server/internal/agent/graph/pipeline"
	"github.com/carecrew/server/internal/agent/graph/router"
	"github.com/carecrew/server/internal/agent/graph/tools"
	"github.com/carecrew/server/internal/agent/model"
	errx "github.com/carecrew/server/internal/core/error"
	logx "github.com/carecrew/server/pkg/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// ApologyMessage is the reply when a pipeline run fails.
	ApologyMessage = "Sorry, I encountered an error. Please try again."
)

// Runner answers chat messages and resets sessions.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.ChatResult, error)
	Reset(ctx context.Context, sessionID string) error
}

// Config holds everything needed to compose the chat service end-to-end.
type Config struct {
	APIKey           string
	BaseURL          string
	StageModel       model.StageModelConfig
	ReviewModel      model.ReviewModelConfig
	Pipeline         model.PipelineConfig
	ConversationRepo model.ConversationRepository
	ActionSink       tools.ActionSink
	Metrics          *observers.Metrics
}

// ChatService ties the session store, classifier, pipeline builder and executor together.
type ChatService struct {
	messages    *conversations.MessagesManager
	executor    *Executor
	defaultMode model.Mode
	metrics     *observers.Metrics
}

func NewChatService(messages *conversations.MessagesManager, executor *Executor, defaultMode model.Mode, metrics *observers.Metrics) *ChatService {
	return &ChatService{
		messages:    messages,
		executor:    executor,
		defaultMode: model.ParseMode(string(defaultMode), model.ModeFast),
		metrics:     metrics,
	}
}

// Invoke records the message, runs the pipeline picked for it and records the
// reply. On a failed run the returned result carries the apology and error
// metadata next to the error; the apology is not written to the session.
func (s *ChatService) Invoke(ctx context.Context, in model.QueryInput) (*model.ChatResult, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, errx.InvalidInput("message is empty")
	}
	if in.SessionID == "" {
		return nil, errx.InvalidInput("session id is empty")
	}

	pin, err := s.messages.ProcessUserMessage(ctx, in.SessionID, message)
	if err != nil {
		return nil, err
	}

	category := router.Classify(message)
	mode := model.ParseMode(string(in.Mode), s.defaultMode)
	p := pipeline.Build(category, mode == model.ModeFast)

	meta := model.ChatMetadata{
		Category:   category,
		Mode:       mode,
		StageCount: len(p.Stages),
	}

	logx.Info().
		Str("session_id", in.SessionID).
		Str("category", string(category)).
		Str("mode", string(mode)).
		Int("stages", len(p.Stages)).
		Msg("Processing customer inquiry")

	start := time.Now()
	res, err := s.executor.Execute(ctx, p, pin)
	if err != nil {
		meta.Status = StatusError
		s.metrics.ObserveRun(string(mode), string(category), StatusError, 0)
		logx.Error().Err(err).Str("session_id", in.SessionID).Dur("elapsed", time.Since(start)).Msg("Pipeline run failed")
		return &model.ChatResult{
			Response:  ApologyMessage,
			Metadata:  meta,
			SessionID: in.SessionID,
		}, errx.WrapCompletion(err)
	}

	if err := s.messages.SaveResponse(ctx, in.SessionID, res.FinalText); err != nil {
		return nil, err
	}

	meta.Status = StatusSuccess
	meta.CostUSD = res.TotalCostUSD
	s.metrics.ObserveRun(string(mode), string(category), StatusSuccess, res.TotalCostUSD)
	logx.Info().
		Str("session_id", in.SessionID).
		Dur("elapsed", time.Since(start)).
		Float64("cost_usd", res.TotalCostUSD).
		Msg("Pipeline run completed")

	return &model.ChatResult{
		Response:  res.FinalText,
		Metadata:  meta,
		SessionID: in.SessionID,
	}, nil
}

// Reset forgets a session; unknown ids are fine.
func (s *ChatService) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.messages.Reset(ctx, sessionID)
}

// BuildChatService composes chat models, tools, the executor and the session
// manager into a ready Runner.
func BuildChatService(ctx context.Context, cfg Config) (*ChatService, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseURL,
		StageConfig:  &cfg.StageModel,
		ReviewConfig: &cfg.ReviewModel,
	})
	if err != nil {
		return nil, err
	}

	stageTimeout := nodes.DefaultStageTimeout
	if cfg.Pipeline.StageTimeout != "" {
		stageTimeout, err = time.ParseDuration(cfg.Pipeline.StageTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid PIPELINE_STAGE_TIMEOUT %q: %w", cfg.Pipeline.StageTimeout, err)
		}
	}

	store := tools.NewKnowledgeStore(cfg.ActionSink)
	runner := nodes.NewStageRunner(cms, tools.GetStageTools(store), stageTimeout)
	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Pipeline.ContextTurns)

	logx.Debug().
		Str("stage_model", cms.StageModelName).
		Str("review_model", cms.ReviewModelName).
		Str("default_mode", cfg.Pipeline.Mode).
		Msg("Chat service built successfully")

	return NewChatService(mm, NewExecutor(runner, cfg.Metrics), model.Mode(cfg.Pipeline.Mode), cfg.Metrics), nil
}

var _ Runner = (*ChatService)(nil)
