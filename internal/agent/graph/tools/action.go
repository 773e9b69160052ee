package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carecrew/server/internal/agent/model"
	errx "github.com/carecrew/server/internal/core/error"
	logx "github.com/carecrew/server/pkg/logger"
)

// ActionSink receives every action the resolver takes.
type ActionSink interface {
	Record(ctx context.Context, action model.ActionRecord) error
}

// LogActionSink writes actions to the structured log.
type LogActionSink struct{}

func (LogActionSink) Record(_ context.Context, action model.ActionRecord) error {
	logx.Info().
		Str("action_type", strings.ToUpper(action.Kind)).
		Str("details", action.Details).
		Msg("action logged")
	return nil
}

// RedisActionSink appends actions to a capped Redis stream.
type RedisActionSink struct {
	rdb    redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisActionSink(rdb redis.Cmdable, stream string, maxLen int64) *RedisActionSink {
	return &RedisActionSink{rdb: rdb, stream: stream, maxLen: maxLen}
}

func (s *RedisActionSink) Record(ctx context.Context, action model.ActionRecord) error {
	err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"kind":      action.Kind,
			"details":   action.Details,
			"logged_at": time.Now().UTC().Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

// LogAction records an action and confirms it. Sink failures are logged and
// swallowed so the resolver always gets its confirmation.
func (s *KnowledgeStore) LogAction(ctx context.Context, kind, details string) string {
	action := model.ActionRecord{Kind: kind, Details: details}
	if err := s.sink.Record(ctx, action); err != nil {
		logx.Error().Err(err).Str("action_type", kind).Msg("failed to record action")
	}
	return fmt.Sprintf("Action logged successfully: %s", kind)
}

// NoActionTaken is handed to the resolver when the message asks for no action.
const NoActionTaken = "No action was logged: the customer did not ask for a refund, cancellation, escalation or callback."
