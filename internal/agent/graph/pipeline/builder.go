// Package pipeline assembles the stage chains that answer an inquiry.
package pipeline

import (
	"github.com/carecrew/server/internal/agent/graph/prompts"
	"github.com/carecrew/server/internal/agent/graph/tools"
	"github.com/carecrew/server/internal/agent/model"
)

// Build returns the pipeline for a category. The fast variant has two stages
// picked by category; the full variant always runs all five stages and
// ignores the category for routing.
func Build(category model.Category, fast bool) model.Pipeline {
	if !fast {
		return model.Pipeline{Mode: model.ModeFull, Category: category, Stages: fullStages()}
	}
	if category == model.CategoryOrder {
		return model.Pipeline{Mode: model.ModeFast, Category: category, Stages: fastOrderStages()}
	}
	return model.Pipeline{Mode: model.ModeFast, Category: category, Stages: fastFAQStages()}
}

func fastFAQStages() []model.Stage {
	return []model.Stage{
		{
			ID:           model.StageResearch,
			Role:         model.RoleResearcher,
			Instructions: prompts.FastResearch,
			Tool:         tools.ToolSearchFAQ,
		},
		{
			ID:           model.StageReview,
			Role:         model.RoleReviewer,
			Instructions: prompts.FastReview,
			DependsOn:    []model.StageID{model.StageResearch},
		},
	}
}

func fastOrderStages() []model.Stage {
	return []model.Stage{
		{
			ID:           model.StageOrderLookup,
			Role:         model.RoleOrderLookup,
			Instructions: prompts.FastOrderLookup,
			Tool:         tools.ToolLookupOrder,
		},
		{
			ID:           model.StageReview,
			Role:         model.RoleReviewer,
			Instructions: prompts.FastReview,
			DependsOn:    []model.StageID{model.StageOrderLookup},
		},
	}
}

func fullStages() []model.Stage {
	return []model.Stage{
		{
			ID:           model.StageGreet,
			Role:         model.RoleClassifier,
			Instructions: prompts.FullGreet,
		},
		{
			ID:           model.StageResearch,
			Role:         model.RoleResearcher,
			Instructions: prompts.FullResearch,
			DependsOn:    []model.StageID{model.StageGreet},
			Tool:         tools.ToolSearchFAQ,
		},
		{
			ID:           model.StageOrderCheck,
			Role:         model.RoleOrderLookup,
			Instructions: prompts.FullOrderCheck,
			DependsOn:    []model.StageID{model.StageGreet, model.StageResearch},
			Tool:         tools.ToolLookupOrder,
		},
		{
			ID:           model.StageResolve,
			Role:         model.RoleResolver,
			Instructions: prompts.FullResolve,
			DependsOn:    []model.StageID{model.StageGreet, model.StageResearch, model.StageOrderCheck},
			Tool:         tools.ToolLogAction,
		},
		{
			ID:           model.StageReview,
			Role:         model.RoleReviewer,
			Instructions: prompts.FullReview,
			DependsOn:    []model.StageID{model.StageGreet, model.StageResearch, model.StageOrderCheck, model.StageResolve},
		},
	}
}
