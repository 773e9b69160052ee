package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/carecrew/server/internal/agent/model"
)

// DefaultMaxHistory keeps the last 10 exchanges.
const DefaultMaxHistory = 20

func normalizeMaxHistory(n int) int {
	if n <= 0 {
		return DefaultMaxHistory
	}
	return n
}

type session struct {
	mu    sync.Mutex
	turns []model.Turn
}

// MemoryConversationRepository keeps transcripts in process memory. Each
// session has its own lock so concurrent requests for one session cannot
// interleave an append with a trim.
type MemoryConversationRepository struct {
	mu         sync.Mutex // guards session creation
	cache      *cache.Cache
	maxHistory int
}

// NewMemoryConversationRepository creates the store. A ttl of zero keeps
// sessions until they are cleared.
func NewMemoryConversationRepository(ttl time.Duration, maxHistory int) *MemoryConversationRepository {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, ttl
	}
	return &MemoryConversationRepository{
		cache:      cache.New(expiration, cleanup),
		maxHistory: normalizeMaxHistory(maxHistory),
	}
}

func (r *MemoryConversationRepository) session(sessionID string) *session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(sessionID); found {
		return x.(*session)
	}
	s := &session{}
	r.cache.SetDefault(sessionID, s)
	return s
}

func (r *MemoryConversationRepository) AddTurn(_ context.Context, sessionID string, turn model.Turn) error {
	s := r.session(sessionID)

	s.mu.Lock()
	s.turns = append(s.turns, turn)
	if over := len(s.turns) - r.maxHistory; over > 0 {
		s.turns = slices.Clone(s.turns[over:])
	}
	s.mu.Unlock()

	// extend TTL on touch; a concurrent clear wins
	_ = r.cache.Replace(sessionID, s, cache.DefaultExpiration)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, sessionID string) (*model.ConversationHistory, error) {
	s := r.session(sessionID)

	s.mu.Lock()
	turns := slices.Clone(s.turns)
	s.mu.Unlock()

	if turns == nil {
		turns = []model.Turn{}
	}
	return &model.ConversationHistory{SessionID: sessionID, Turns: turns}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

func (r *MemoryConversationRepository) GetTurnCount(_ context.Context, sessionID string) (int, error) {
	x, found := r.cache.Get(sessionID)
	if !found {
		return 0, nil
	}
	s := x.(*session)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
