package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/handler/dto"
)

// VisualizationHandler handles chart-engine HTTP requests
type VisualizationHandler struct {
	usecase domain.VisualizationUsecase
	logger  *slog.Logger
}

// NewVisualizationHandler creates a new visualization handler
func NewVisualizationHandler(usecase domain.VisualizationUsecase, logger *slog.Logger) *VisualizationHandler {
	return &VisualizationHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// VisualizeMessage runs the chart engine over a stored exchange's result
// rows. A cannot-visualize verdict is a successful response, not an error.
// POST /api/v1/messages/:id/visualize
func (h *VisualizationHandler) VisualizeMessage(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	messageID := c.Param("id")
	result, err := h.usecase.VisualizeMessage(ctx, userID, messageID)
	if err != nil {
		h.logger.Error("visualization failed", "error", err, "message_id", messageID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToVisualizationResponse(result))
}

// Preview runs the chart engine over caller-supplied rows without touching
// persistence or the recommendation service
// POST /api/v1/visualizations/preview
func (h *VisualizationHandler) Preview(ctx context.Context, c *app.RequestContext) {
	if _, ok := currentUserID(c); !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.PreviewRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid preview request", "error", err)
		BadRequestResponse(c, "data must be a JSON array of row objects")
		return
	}

	result := h.usecase.Preview(ctx, req.Data, req.RecommendedGraphs)
	SuccessResponse(c, dto.ToVisualizationResponse(result))
}
