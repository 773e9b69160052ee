package conversations

import (
	"context"
	"strings"

	"github.com/carecrew/server/internal/agent/graph/prompts"
	"github.com/carecrew/server/internal/agent/model"
)

// DefaultContextTurns is how many recent turns every stage sees.
const DefaultContextTurns = 5

type MessagesManager struct {
	conversationRepo model.ConversationRepository
	contextTurns     int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, contextTurns int) *MessagesManager {
	if contextTurns <= 0 {
		contextTurns = DefaultContextTurns
	}
	return &MessagesManager{
		conversationRepo: conversationRepo,
		contextTurns:     contextTurns,
	}
}

// ProcessUserMessage saves the user message and returns the pipeline input
// with the formatted excerpt of recent turns, the new message included.
func (cm *MessagesManager) ProcessUserMessage(ctx context.Context, sessionID string, message string) (model.PipelineInput, error) {
	if err := cm.conversationRepo.AddTurn(ctx, sessionID, model.UserTurn(message)); err != nil {
		return model.PipelineInput{}, err
	}

	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return model.PipelineInput{}, err
	}

	return model.PipelineInput{
		Message: message,
		Context: prompts.FormatContext(history.Turns, cm.contextTurns),
	}, nil
}

func (cm *MessagesManager) SaveResponse(ctx context.Context, sessionID string, content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return cm.conversationRepo.AddTurn(ctx, sessionID, model.AssistantTurn(content))
}

func (cm *MessagesManager) History(ctx context.Context, sessionID string) ([]model.Turn, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return history.Turns, nil
}

// Reset forgets the session. Unknown sessions are fine.
func (cm *MessagesManager) Reset(ctx context.Context, sessionID string) error {
	return cm.conversationRepo.ClearHistory(ctx, sessionID)
}
