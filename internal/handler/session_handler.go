package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/handler/dto"
)

// SessionHandler handles query-session HTTP requests
type SessionHandler struct {
	sessions domain.SessionUsecase
	messages domain.MessageUsecase
	export   domain.ExportUsecase
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessions domain.SessionUsecase,
	messages domain.MessageUsecase,
	export domain.ExportUsecase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		messages: messages,
		export:   export,
		logger:   logger,
	}
}

// CreateSession starts a new session
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.CreateSessionRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid create session request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	session, err := h.sessions.CreateSession(ctx, userID, req.Title, req.DatabaseID)
	if err != nil {
		h.logger.Error("failed to create session", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	CreatedResponse(c, dto.ToSessionResponse(session))
}

// GetSession retrieves one session
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	session, err := h.sessions.GetSession(ctx, userID, c.Param("id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToSessionResponse(session))
}

// ListSessions retrieves the caller's sessions, newest first
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sessions, total, err := h.sessions.ListSessions(ctx, userID, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list sessions", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToSessionListResponse(sessions, total, page, pageSize))
}

// RenameSession updates the session title
// PUT /api/v1/sessions/:id
func (h *SessionHandler) RenameSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.RenameSessionRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	sessionID := c.Param("id")
	if err := h.sessions.RenameSession(ctx, userID, sessionID, req.Title); err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, map[string]string{"message": "session renamed"})
}

// DeleteSession removes a session and its messages
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	sessionID := c.Param("id")
	if err := h.sessions.DeleteSession(ctx, userID, sessionID); err != nil {
		h.logger.Error("failed to delete session", "error", err, "session_id", sessionID)
		ErrorResponse(c, err)
		return
	}

	NoContentResponse(c)
}

// ListSessionMessages retrieves the session transcript in chronological order
// GET /api/v1/sessions/:id/messages
func (h *SessionHandler) ListSessionMessages(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	messages, err := h.messages.ListMessages(ctx, userID, c.Param("id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	items := dto.ToMessageListResponse(messages)
	SuccessResponse(c, ListResponse{Items: items, TotalCount: len(items)})
}

// GetSessionReport summarizes the session's exchanges
// GET /api/v1/sessions/:id/report
func (h *SessionHandler) GetSessionReport(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	report, err := h.export.Report(ctx, userID, c.Param("id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToSessionReportResponse(report))
}

// ExportSessionPDF renders the session transcript as a downloadable PDF
// GET /api/v1/sessions/:id/pdf
func (h *SessionHandler) ExportSessionPDF(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	sessionID := c.Param("id")
	pdf, filename, err := h.export.ExportPDF(ctx, userID, sessionID)
	if err != nil {
		h.logger.Error("failed to export session", "error", err, "session_id", sessionID)
		ErrorResponse(c, err)
		return
	}

	c.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(consts.StatusOK, "application/pdf", pdf)
}
