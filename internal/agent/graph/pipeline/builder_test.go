package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecrew/server/internal/agent/graph/tools"
	"github.com/carecrew/server/internal/agent/model"
)

func stageIDs(p model.Pipeline) []model.StageID {
	ids := make([]model.StageID, 0, len(p.Stages))
	for _, st := range p.Stages {
		ids = append(ids, st.ID)
	}
	return ids
}

func TestBuildFastFAQ(t *testing.T) {
	p := Build(model.CategoryFAQ, true)
	require.NoError(t, p.Validate())

	assert.Equal(t, model.ModeFast, p.Mode)
	assert.Equal(t, []model.StageID{model.StageResearch, model.StageReview}, stageIDs(p))
	assert.Equal(t, tools.ToolSearchFAQ, p.Stages[0].Tool)
	assert.Equal(t, model.RoleReviewer, p.Final().Role)
	assert.Equal(t, []model.StageID{model.StageResearch}, p.Final().DependsOn)
	assert.Empty(t, p.Final().Tool)
}

func TestBuildFastOrder(t *testing.T) {
	p := Build(model.CategoryOrder, true)
	require.NoError(t, p.Validate())

	assert.Equal(t, []model.StageID{model.StageOrderLookup, model.StageReview}, stageIDs(p))
	assert.Equal(t, tools.ToolLookupOrder, p.Stages[0].Tool)
	assert.Equal(t, model.RoleOrderLookup, p.Stages[0].Role)
	assert.Equal(t, []model.StageID{model.StageOrderLookup}, p.Final().DependsOn)
}

func TestBuildFullIgnoresCategory(t *testing.T) {
	want := []model.StageID{model.StageGreet, model.StageResearch, model.StageOrderCheck, model.StageResolve, model.StageReview}

	for _, c := range []model.Category{model.CategoryFAQ, model.CategoryOrder} {
		p := Build(c, false)
		require.NoError(t, p.Validate())
		assert.Equal(t, model.ModeFull, p.Mode)
		assert.Equal(t, want, stageIDs(p))
		assert.Equal(t, c, p.Category)
	}
}

func TestBuildFullWiring(t *testing.T) {
	p := Build(model.CategoryFAQ, false)

	bound := map[model.StageID]string{}
	roles := map[model.StageID]model.StageRole{}
	for _, st := range p.Stages {
		bound[st.ID] = st.Tool
		roles[st.ID] = st.Role
		assert.NotEmpty(t, st.Instructions, st.ID)
	}

	assert.Equal(t, "search_faq", bound[model.StageResearch])
	assert.Equal(t, "lookup_order", bound[model.StageOrderCheck])
	assert.Equal(t, "log_action", bound[model.StageResolve])
	assert.Empty(t, bound[model.StageGreet])
	assert.Empty(t, bound[model.StageReview])

	assert.Equal(t, model.RoleClassifier, roles[model.StageGreet])
	assert.Equal(t, model.RoleResolver, roles[model.StageResolve])

	assert.Len(t, p.Final().DependsOn, 4)
}

func TestBuildIsDeterministic(t *testing.T) {
	assert.Equal(t, Build(model.CategoryOrder, false), Build(model.CategoryOrder, false))
	assert.Equal(t, Build(model.CategoryFAQ, true), Build(model.CategoryFAQ, true))
}
