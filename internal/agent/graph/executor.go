package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"

	"github.com/carecrew/server/internal/agent/graph/nodes"
	"github.com/carecrew/server/internal/agent/graph/observers"
	"github.com/carecrew/server/internal/agent/graph/prompts"
	"github.com/carecrew/server/internal/agent/model"
	logx "github.com/carecrew/server/pkg/logger"
)

// Executor runs a pipeline as an eino chain: one lambda node per stage and a
// collector node that turns the chain's local state into a RunResult.
type Executor struct {
	runner  *nodes.StageRunner
	metrics *observers.Metrics
}

func NewExecutor(runner *nodes.StageRunner, metrics *observers.Metrics) *Executor {
	return &Executor{runner: runner, metrics: metrics}
}

// Execute runs every stage strictly in order. The first failing stage halts
// the run; the caller gets a *model.StageError and no partial result.
func (e *Executor) Execute(ctx context.Context, p model.Pipeline, in model.PipelineInput) (*model.RunResult, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("stage runner is nil")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline: %w", err)
	}

	// set by the failing stage node; the chain itself stops at the first error
	var failure *model.StageError

	chain := compose.NewChain[model.PipelineInput, *model.RunResult](
		compose.WithGenLocalState(func(ctx context.Context) *model.PipelineState {
			return &model.PipelineState{
				Results: make(map[model.StageID]model.StageResult, len(p.Stages)),
				Order:   make([]model.StageID, 0, len(p.Stages)),
			}
		}),
	)
	for _, st := range p.Stages {
		chain.AppendLambda(
			compose.InvokableLambda(e.stageNode(st, &failure)),
			compose.WithNodeName(string(st.ID)),
		)
	}
	chain.AppendLambda(compose.InvokableLambda(collectNode(p)), compose.WithNodeName("collect"))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling pipeline")
		return nil, fmt.Errorf("error compiling pipeline: %w", err)
	}

	out, err := runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
	if failure != nil {
		return nil, failure
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Executor) stageNode(stage model.Stage, failure **model.StageError) func(context.Context, model.PipelineInput) (model.PipelineInput, error) {
	return func(ctx context.Context, in model.PipelineInput) (model.PipelineInput, error) {
		var deps []prompts.DependencyOutput
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.PipelineState) error {
			for _, id := range stage.DependsOn {
				r, ok := s.Results[id]
				if !ok {
					return fmt.Errorf("stage %s: dependency %s has no result", stage.ID, id)
				}
				deps = append(deps, prompts.DependencyOutput{
					Stage:  id,
					Title:  prompts.DependencyTitle(r.Role),
					Output: r.Output,
				})
			}
			return nil
		})
		if err != nil {
			return in, err
		}

		start := time.Now()
		out, err := e.runner.Run(ctx, stage, in, deps)
		e.metrics.ObserveStage(string(stage.ID), time.Since(start), err)
		if err != nil {
			*failure = &model.StageError{Stage: stage.ID, Err: err}
			logx.Error().Err(err).Str("stage", string(stage.ID)).Str("role", string(stage.Role)).Msg("Stage failed, halting pipeline")
			return in, *failure
		}
		logx.Debug().Str("stage", string(stage.ID)).Dur("elapsed", time.Since(start)).Msg("Stage completed")

		return in, compose.ProcessState(ctx, func(_ context.Context, s *model.PipelineState) error {
			s.Results[stage.ID] = model.StageResult{Stage: stage.ID, Role: stage.Role, Output: out.Output}
			s.Order = append(s.Order, stage.ID)
			s.TotalCostUSD += out.CostUSD
			return nil
		})
	}
}

func collectNode(p model.Pipeline) func(context.Context, model.PipelineInput) (*model.RunResult, error) {
	final := p.Final().ID
	return func(ctx context.Context, _ model.PipelineInput) (*model.RunResult, error) {
		var res *model.RunResult
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.PipelineState) error {
			last, ok := s.Results[final]
			if !ok {
				return fmt.Errorf("final stage %s has no result", final)
			}
			res = &model.RunResult{
				FinalText:    last.Output,
				Results:      s.Results,
				Order:        s.Order,
				TotalCostUSD: s.TotalCostUSD,
			}
			return nil
		})
		return res, err
	}
}
