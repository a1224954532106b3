package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/handler/dto"
)

// MessageHandler handles question/answer exchange HTTP requests
type MessageHandler struct {
	usecase domain.MessageUsecase
	logger  *slog.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(usecase domain.MessageUsecase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// Ask forwards a natural-language question to the agent service and
// persists the exchange. Agent-side query failures come back as a normal
// response with the error field set.
// POST /api/v1/messages
func (h *MessageHandler) Ask(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.AskRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid ask request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	message, err := h.usecase.Ask(ctx, userID, &domain.AskRequest{
		SessionID:  req.SessionID,
		DatabaseID: req.DatabaseID,
		Question:   req.Question,
	})
	if err != nil {
		h.logger.Error("ask failed", "error", err, "session_id", req.SessionID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToMessageResponse(message))
}

// GetMessage retrieves one exchange
// GET /api/v1/messages/:id
func (h *MessageHandler) GetMessage(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	message, err := h.usecase.GetMessage(ctx, userID, c.Param("id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToMessageResponse(message))
}
