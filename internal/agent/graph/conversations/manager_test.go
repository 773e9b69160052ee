package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecrew/server/internal/agent/model"
	"github.com/carecrew/server/internal/agent/repo"
)

func TestProcessUserMessageQuotesRecentTurns(t *testing.T) {
	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryConversationRepository(0, 20), 3)

	for i := 0; i < 3; i++ {
		_, err := mm.ProcessUserMessage(ctx, "s1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
		require.NoError(t, mm.SaveResponse(ctx, "s1", fmt.Sprintf("a%d", i)))
	}

	in, err := mm.ProcessUserMessage(ctx, "s1", "latest")
	require.NoError(t, err)
	assert.Equal(t, "latest", in.Message)
	assert.Equal(t, "user: q2\nassistant: a2\nuser: latest", in.Context)
}

func TestSaveResponseSkipsBlank(t *testing.T) {
	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryConversationRepository(0, 20), 0)

	require.NoError(t, mm.SaveResponse(ctx, "s1", "   "))
	turns, err := mm.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
	assert.Equal(t, DefaultContextTurns, mm.contextTurns)
}

func TestResetForgetsSession(t *testing.T) {
	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryConversationRepository(0, 20), 5)

	_, err := mm.ProcessUserMessage(ctx, "s1", "hello")
	require.NoError(t, err)
	require.NoError(t, mm.Reset(ctx, "s1"))
	require.NoError(t, mm.Reset(ctx, "unknown"))

	turns, err := mm.History(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []model.Turn{}, turns)
}
