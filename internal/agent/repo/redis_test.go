package repo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecrew/server/internal/agent/model"
	pkgredis "github.com/carecrew/server/pkg/redis"
)

// Runs against a live Redis when REDIS_URL is set.
func newRedisRepo(t *testing.T, ttl time.Duration) *RedisConversationRepository {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	cfg := pkgredis.Config{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5}
	rdb, err := cfg.New(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisConversationRepository(rdb, "carecrew-test-"+uuid.NewString(), ttl, 20)
}

func TestRedisRepositoryKeepsMostRecentTurns(t *testing.T) {
	ctx := context.Background()
	r := newRedisRepo(t, time.Minute)
	t.Cleanup(func() { _ = r.ClearHistory(ctx, "s1") })

	for i := 0; i < 25; i++ {
		turn := model.UserTurn(fmt.Sprintf("m%d", i))
		if i%2 == 1 {
			turn = model.AssistantTurn(fmt.Sprintf("m%d", i))
		}
		require.NoError(t, r.AddTurn(ctx, "s1", turn))
	}

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h.Turns, 20)
	assert.Equal(t, "m5", h.Turns[0].Content)
	assert.Equal(t, "m24", h.Turns[19].Content)
	assert.Equal(t, model.AssistantTurn("m5"), h.Turns[0])

	n, err := r.GetTurnCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestRedisRepositoryClear(t *testing.T) {
	ctx := context.Background()
	r := newRedisRepo(t, 0)

	assert.NoError(t, r.ClearHistory(ctx, "never-seen"))

	require.NoError(t, r.AddTurn(ctx, "s1", model.UserTurn("hello")))
	require.NoError(t, r.ClearHistory(ctx, "s1"))

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, h.Turns)
}
