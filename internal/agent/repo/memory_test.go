package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecrew/server/internal/agent/model"
)

func TestMemoryRepositoryKeepsMostRecentTurns(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(0, 20)

	for i := 0; i < 25; i++ {
		require.NoError(t, r.AddTurn(ctx, "s1", model.UserTurn(fmt.Sprintf("m%d", i))))
	}

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h.Turns, 20)
	for i, turn := range h.Turns {
		assert.Equal(t, fmt.Sprintf("m%d", i+5), turn.Content)
	}

	n, err := r.GetTurnCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestMemoryRepositoryUnknownSession(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(0, 0)

	n, err := r.GetTurnCount(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)

	h, err := r.LoadHistory(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", h.SessionID)
	assert.NotNil(t, h.Turns)
	assert.Empty(t, h.Turns)
}

func TestMemoryRepositoryClear(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(0, 20)

	assert.NoError(t, r.ClearHistory(ctx, "never-seen"))

	require.NoError(t, r.AddTurn(ctx, "s1", model.UserTurn("hello")))
	require.NoError(t, r.AddTurn(ctx, "s2", model.UserTurn("other")))
	require.NoError(t, r.ClearHistory(ctx, "s1"))
	require.NoError(t, r.ClearHistory(ctx, "s1"))

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, h.Turns)

	h, err = r.LoadHistory(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, h.Turns, 1)
}

func TestMemoryRepositoryHistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(0, 20)
	require.NoError(t, r.AddTurn(ctx, "s1", model.UserTurn("original")))

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	h.Turns[0].Content = "mutated"

	h, err = r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "original", h.Turns[0].Content)
}

func TestMemoryRepositoryTTL(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(30*time.Millisecond, 20)
	require.NoError(t, r.AddTurn(ctx, "s1", model.UserTurn("hello")))

	assert.Eventually(t, func() bool {
		n, _ := r.GetTurnCount(ctx, "s1")
		return n == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryRepositoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(0, 20)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = r.AddTurn(ctx, "shared", model.UserTurn(fmt.Sprintf("w%d-%d", w, i)))
			}
		}(w)
	}
	wg.Wait()

	n, err := r.GetTurnCount(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}
