package prompts

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecrew/server/internal/agent/model"
)

func TestRenderStage(t *testing.T) {
	stage := model.Stage{ID: model.StageReview, Role: model.RoleReviewer, Instructions: FastReview}
	msgs, err := RenderStage(context.Background(), stage, StagePromptData{
		Message: "How long does shipping take?",
		Dependencies: []DependencyOutput{
			{Stage: model.StageResearch, Title: DependencyTitle(model.RoleResearcher), Output: "Standard shipping takes 3-5 business days."},
		},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, Persona(model.RoleReviewer), msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Customer asked: How long does shipping take?")
	assert.Contains(t, msgs[1].Content, "Researcher's findings:\nStandard shipping takes 3-5 business days.")
	assert.Contains(t, msgs[1].Content, "Maximum 2 sentences")
}

func TestRenderStageTool(t *testing.T) {
	stage := model.Stage{ID: model.StageOrderLookup, Role: model.RoleOrderLookup, Instructions: FastOrderLookup}
	msgs, err := RenderStage(context.Background(), stage, StagePromptData{
		Message:    "where is 12345",
		ToolName:   "lookup_order",
		ToolResult: "Order #12345 - Status: Shipped",
	})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, "The lookup_order tool returned:\nOrder #12345 - Status: Shipped")
}

func TestRenderStageOmitsEmptyContext(t *testing.T) {
	stage := model.Stage{ID: model.StageGreet, Role: model.RoleClassifier, Instructions: FullGreet}

	msgs, err := RenderStage(context.Background(), stage, StagePromptData{Message: "hi"})
	require.NoError(t, err)
	assert.NotContains(t, msgs[1].Content, "Previous conversation")

	msgs, err = RenderStage(context.Background(), stage, StagePromptData{Message: "hi", Context: "user: hello"})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, "Previous conversation:\nuser: hello")
}

func TestRenderStageRequiresInstructions(t *testing.T) {
	_, err := RenderStage(context.Background(), model.Stage{ID: model.StageGreet}, StagePromptData{})
	assert.Error(t, err)
}

func TestFormatContext(t *testing.T) {
	turns := []model.Turn{
		model.UserTurn("one"),
		model.AssistantTurn("two"),
		model.UserTurn("three"),
		model.AssistantTurn(""),
		model.UserTurn("five"),
		model.AssistantTurn("six"),
	}

	assert.Equal(t, "assistant: two\nuser: three\nuser: five\nassistant: six", FormatContext(turns, 5))
	assert.Equal(t, "assistant: six", FormatContext(turns, 1))
	assert.Empty(t, FormatContext(turns, 0))
	assert.Empty(t, FormatContext(nil, 5))
}

func TestPersonaFallback(t *testing.T) {
	assert.NotEmpty(t, Persona("unknown"))
	for _, r := range []model.StageRole{model.RoleClassifier, model.RoleResearcher, model.RoleOrderLookup, model.RoleResolver, model.RoleReviewer} {
		assert.NotEqual(t, Persona("unknown"), Persona(r))
	}
}
