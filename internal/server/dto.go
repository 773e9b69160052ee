package server

import "github.com/carecrew/server/internal/agent/model"

// EmptyMessageReply is shown when the client sends a blank message.
const EmptyMessageReply = "Please enter a message."

// InvalidRequestReply is shown when a chat request fails validation.
const InvalidRequestReply = "Sorry, that request could not be processed."

type ChatRequest struct {
	Message   string `json:"message" validate:"max=4000"`
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	Mode      string `json:"mode" validate:"omitempty,oneof=fast full"`
}

type ChatResponse struct {
	Response  string              `json:"response"`
	Error     string              `json:"error,omitempty"`
	Metadata  *model.ChatMetadata `json:"metadata,omitempty"`
	SessionID string              `json:"session_id,omitempty"`
}

type ResetRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status string `json:"status"`
	System string `json:"system"`
	Agents int    `json:"agents"`
}
