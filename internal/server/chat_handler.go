package server

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/carecrew/server/internal/agent/graph"
	"github.com/carecrew/server/internal/agent/model"
	errx "github.com/carecrew/server/internal/core/error"
	logx "github.com/carecrew/server/pkg/logger"
)

// agentCount is the number of stage roles in the full pipeline.
const agentCount = 5

type chatHandler struct {
	runner   graph.Runner
	validate *validator.Validate
}

func newChatHandler(runner graph.Runner) *chatHandler {
	return &chatHandler{runner: runner, validate: validator.New()}
}

func (h *chatHandler) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", h.Chat)
	r.Get("/health", h.Health)
	r.Post("/reset", h.Reset)
}

func (h *chatHandler) Chat(ctx *fiber.Ctx) error {
	var req ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ChatResponse{Response: EmptyMessageReply, Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(ChatResponse{Response: EmptyMessageReply})
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if err := h.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(ChatResponse{Response: InvalidRequestReply, Error: err.Error()})
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res, err := h.runner.Invoke(ctx.UserContext(), model.QueryInput{
		SessionID: sessionID,
		Message:   req.Message,
		Mode:      model.Mode(req.Mode),
	})
	if err != nil {
		status := errx.StatusOf(err)
		if status == http.StatusBadRequest {
			return ctx.Status(status).JSON(ChatResponse{Response: EmptyMessageReply})
		}
		logx.Error().Err(err).Str("session_id", sessionID).Int("status", status).Msg("Error in chat endpoint")

		meta := model.ChatMetadata{Status: graph.StatusError}
		reply := graph.ApologyMessage
		if res != nil {
			meta, reply = res.Metadata, res.Response
		}
		return ctx.Status(status).JSON(ChatResponse{
			Response:  reply,
			Error:     err.Error(),
			Metadata:  &meta,
			SessionID: sessionID,
		})
	}

	return ctx.JSON(ChatResponse{
		Response:  res.Response,
		Metadata:  &res.Metadata,
		SessionID: res.SessionID,
	})
}

func (h *chatHandler) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(HealthResponse{Status: "ok", System: "multi-agent", Agents: agentCount})
}

// Reset always reports success; a missing or unknown session id is a no-op.
func (h *chatHandler) Reset(ctx *fiber.Ctx) error {
	var req ResetRequest
	if err := parseBody(ctx, &req); err != nil {
		logx.Warn().Err(err).Msg("Ignoring malformed reset body")
	}
	if err := h.validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.runner.Reset(ctx.UserContext(), strings.TrimSpace(req.SessionID)); err != nil {
		logx.Error().Err(err).Str("session_id", req.SessionID).Msg("Error resetting session")
		return ctx.Status(errx.StatusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(StatusResponse{Status: "session reset"})
}

// parseBody decodes a JSON body; an empty body leaves out untouched.
func parseBody(ctx *fiber.Ctx, out any) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	return ctx.App().Config().JSONDecoder(ctx.Body(), out)
}
