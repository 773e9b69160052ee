package nodes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/carecrew/server/internal/agent/graph/prompts"
	"github.com/carecrew/server/internal/agent/graph/router"
	"github.com/carecrew/server/internal/agent/graph/tools"
	"github.com/carecrew/server/internal/agent/model"
	errx "github.com/carecrew/server/internal/core/error"
	logx "github.com/carecrew/server/pkg/logger"
)

// StageOutcome is the product of one stage completion.
type StageOutcome struct {
	Output  string
	CostUSD float64
}

// StageRunner executes single stages: tool pre-resolution, prompt rendering
// and one completion call.
type StageRunner struct {
	models       *ChatModels
	tools        map[string]tool.InvokableTool
	stageTimeout time.Duration
}

func NewStageRunner(models *ChatModels, stageTools map[string]tool.InvokableTool, stageTimeout time.Duration) *StageRunner {
	return &StageRunner{
		models:       models,
		tools:        stageTools,
		stageTimeout: stageTimeout,
	}
}

// Run executes stage against the inquiry and the outputs of its dependencies.
// Completion failures come back wrapped by errx.WrapCompletion; nothing is retried.
func (r *StageRunner) Run(ctx context.Context, stage model.Stage, in model.PipelineInput, deps []prompts.DependencyOutput) (StageOutcome, error) {
	data := prompts.StagePromptData{
		Message:      in.Message,
		Context:      in.Context,
		Dependencies: deps,
	}

	if stage.Tool != "" {
		res, err := r.resolveTool(ctx, stage, in.Message)
		if err != nil {
			return StageOutcome{}, err
		}
		data.ToolName, data.ToolDesc, data.ToolResult = res.name, res.desc, res.result
	}

	msgs, err := prompts.RenderStage(ctx, stage, data)
	if err != nil {
		return StageOutcome{}, err
	}

	chatModel, modelName := r.models.ForRole(stage.Role)

	cctx, cancel := withStageTimeout(ctx, r.stageTimeout)
	defer cancel()

	logx.Debug().Str("stage", string(stage.ID)).Str("model", modelName).Msg("AI thinking...")
	out, err := chatModel.Generate(cctx, msgs)
	if err != nil {
		return StageOutcome{}, errx.WrapCompletion(err)
	}
	if out == nil {
		return StageOutcome{}, errx.WrapCompletion(fmt.Errorf("empty completion"))
	}

	return StageOutcome{
		Output:  strings.TrimSpace(out.Content),
		CostUSD: recordUsage(stage.ID, modelName, out),
	}, nil
}

type toolResolution struct {
	name   string
	desc   string
	result string
}

// resolveTool runs the stage's bound tool before the completion so the
// model only has to read the answer.
func (r *StageRunner) resolveTool(ctx context.Context, stage model.Stage, message string) (toolResolution, error) {
	t, ok := r.tools[stage.Tool]
	if !ok {
		return toolResolution{}, fmt.Errorf("stage %s: unknown tool %q", stage.ID, stage.Tool)
	}
	info, err := t.Info(ctx)
	if err != nil {
		return toolResolution{}, fmt.Errorf("stage %s: tool info: %w", stage.ID, err)
	}
	res := toolResolution{name: info.Name, desc: info.Desc}

	var args any
	switch stage.Tool {
	case tools.ToolSearchFAQ:
		args = tools.SearchFAQInput{Query: message}
	case tools.ToolLookupOrder:
		number, found := router.ExtractOrderNumber(message)
		if !found {
			res.result = tools.NoOrderNumber
			return res, nil
		}
		args = tools.LookupOrderInput{OrderNumber: number}
	case tools.ToolLogAction:
		kind, act := router.DetectAction(message)
		if !act {
			res.result = tools.NoActionTaken
			return res, nil
		}
		args = tools.LogActionInput{ActionType: kind, Details: message}
	default:
		return toolResolution{}, fmt.Errorf("stage %s: no argument mapping for tool %q", stage.ID, stage.Tool)
	}

	b, err := json.Marshal(args)
	if err != nil {
		return toolResolution{}, fmt.Errorf("stage %s: marshal tool arguments: %w", stage.ID, err)
	}

	logx.Debug().Str("stage", string(stage.ID)).Str("tool", stage.Tool).RawJSON("arguments", b).Msg("Calling tool")
	raw, err := t.InvokableRun(ctx, string(b))
	if err != nil {
		logx.Error().Err(err).Str("stage", string(stage.ID)).Str("tool", stage.Tool).Msg("Tool execution failed")
		return toolResolution{}, fmt.Errorf("stage %s: tool %s: %w", stage.ID, stage.Tool, err)
	}

	var out tools.Output
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return toolResolution{}, fmt.Errorf("stage %s: decode tool output: %w", stage.ID, err)
	}
	res.result = out.Result
	logx.Debug().Str("stage", string(stage.ID)).Str("tool", stage.Tool).Str("result", out.Result).Msg("Tool returned")
	return res, nil
}

// recordUsage computes and logs the usage cost of one completion.
func recordUsage(stage model.StageID, modelName string, out *schema.Message) float64 {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	logx.Debug().
		Str("stage", string(stage)).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
	return totalC
}
