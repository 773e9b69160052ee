package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/carecrew/server/internal/agent/model"
	logx "github.com/carecrew/server/pkg/logger"
)

// ErrNoCredential is returned by every completion when no API key was configured.
var ErrNoCredential = errors.New("completion service credential is not configured (GEMINI_API_KEY)")

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey       string
	BaseURL      string
	StageConfig  *model.StageModelConfig
	ReviewConfig *model.ReviewModelConfig
}

// ChatModels holds the worker-stage and review-stage chat models
type ChatModels struct {
	Stage           einomodel.BaseChatModel
	Review          einomodel.BaseChatModel
	StageModelName  string
	ReviewModelName string
}

// NewChatModels creates both Gemini chat models. A missing API key is not an
// error here: the models are replaced by ones that fail on first use.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	if config.StageConfig == nil || config.ReviewConfig == nil {
		return nil, fmt.Errorf("chat model config is incomplete")
	}

	if config.APIKey == "" {
		logx.Warn().Msg("GEMINI_API_KEY is not set; completions will fail until it is configured")
		return &ChatModels{
			Stage:           unconfiguredChatModel{},
			Review:          unconfiguredChatModel{},
			StageModelName:  config.StageConfig.Model,
			ReviewModelName: config.ReviewConfig.Model,
		}, nil
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	stageModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.StageConfig.Model,
		Temperature: &config.StageConfig.Temperature,
		MaxTokens:   &config.StageConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating stage model")
		return nil, fmt.Errorf("error creating stage model: %w", err)
	}

	reviewModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.ReviewConfig.Model,
		Temperature: &config.ReviewConfig.Temperature,
		MaxTokens:   &config.ReviewConfig.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(512)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating review model")
		return nil, fmt.Errorf("error creating review model: %w", err)
	}

	return &ChatModels{
		Stage:           stageModel,
		Review:          reviewModel,
		StageModelName:  config.StageConfig.Model,
		ReviewModelName: config.ReviewConfig.Model,
	}, nil
}

// ForRole picks the chat model for a stage role: the review model writes the
// reply, the stage model does everything else.
func (cm *ChatModels) ForRole(role model.StageRole) (einomodel.BaseChatModel, string) {
	if role == model.RoleReviewer {
		return cm.Review, cm.ReviewModelName
	}
	return cm.Stage, cm.StageModelName
}

type unconfiguredChatModel struct{}

func (unconfiguredChatModel) Generate(context.Context, []*schema.Message, ...einomodel.Option) (*schema.Message, error) {
	return nil, ErrNoCredential
}

func (unconfiguredChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, ErrNoCredential
}
