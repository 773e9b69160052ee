package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Turn is one immutable entry of a session transcript.
type Turn struct {
	Role    schema.RoleType `json:"role"`
	Content string          `json:"content"`
}

func UserTurn(content string) Turn {
	return Turn{Role: schema.User, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: schema.Assistant, Content: content}
}

// Message converts the turn into an eino message.
func (t Turn) Message() *schema.Message {
	if t.Role == schema.Assistant {
		return schema.AssistantMessage(t.Content, nil)
	}
	return schema.UserMessage(t.Content)
}

type ConversationRepository interface {
	// AddTurn appends a turn and drops the oldest turns beyond the history bound
	AddTurn(ctx context.Context, sessionID string, turn Turn) error

	// LoadHistory returns the transcript in insertion order; unknown sessions are empty
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// ClearHistory removes the session; clearing an unknown session is not an error
	ClearHistory(ctx context.Context, sessionID string) error

	// GetTurnCount returns the number of turns currently kept for the session
	GetTurnCount(ctx context.Context, sessionID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	SessionID string
	Turns     []Turn
}
