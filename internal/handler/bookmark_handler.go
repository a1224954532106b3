package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/handler/dto"
)

// BookmarkHandler handles saved-question HTTP requests
type BookmarkHandler struct {
	usecase domain.BookmarkUsecase
	logger  *slog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(usecase domain.BookmarkUsecase, logger *slog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// AddBookmark saves a question. Duplicate questions (case-insensitive)
// return the existing bookmark.
// POST /api/v1/bookmarks
func (h *BookmarkHandler) AddBookmark(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.AddBookmarkRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid bookmark request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	bookmark, err := h.usecase.AddBookmark(ctx, userID, &entity.Bookmark{
		Question: req.Question,
		Query:    req.Query,
		Title:    req.Title,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	CreatedResponse(c, dto.ToBookmarkResponse(bookmark))
}

// ListBookmarks retrieves the caller's bookmarks, optionally filtered by
// the q query parameter
// GET /api/v1/bookmarks
func (h *BookmarkHandler) ListBookmarks(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	term := c.Query("q")

	var (
		bookmarks []*entity.Bookmark
		err       error
	)
	if term != "" {
		bookmarks, err = h.usecase.SearchBookmarks(ctx, userID, term)
	} else {
		bookmarks, err = h.usecase.ListBookmarks(ctx, userID)
	}
	if err != nil {
		h.logger.Error("failed to list bookmarks", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	items := dto.ToBookmarkListResponse(bookmarks)
	SuccessResponse(c, ListResponse{Items: items, TotalCount: len(items)})
}

// DeleteBookmark removes a bookmark
// DELETE /api/v1/bookmarks/:id
func (h *BookmarkHandler) DeleteBookmark(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	if err := h.usecase.DeleteBookmark(ctx, userID, c.Param("id")); err != nil {
		ErrorResponse(c, err)
		return
	}

	NoContentResponse(c)
}
