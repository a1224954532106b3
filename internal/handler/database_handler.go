package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/handler/dto"
)

// DatabaseHandler handles connection-profile HTTP requests
type DatabaseHandler struct {
	usecase domain.DatabaseUsecase
	logger  *slog.Logger
}

// NewDatabaseHandler creates a new database profile handler
func NewDatabaseHandler(usecase domain.DatabaseUsecase, logger *slog.Logger) *DatabaseHandler {
	return &DatabaseHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// CreateProfile registers a connection profile
// POST /api/v1/databases
func (h *DatabaseHandler) CreateProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.DatabaseProfileRequest
	if err := c.BindJSON(&req); err != nil {
		h.logger.Error("invalid profile request", "error", err)
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	profile, err := h.usecase.CreateProfile(ctx, userID, req.ToProfileEntity())
	if err != nil {
		h.logger.Error("failed to create profile", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	CreatedResponse(c, dto.ToDatabaseProfileResponse(profile))
}

// GetProfile retrieves one connection profile
// GET /api/v1/databases/:id
func (h *DatabaseHandler) GetProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	profile, err := h.usecase.GetProfile(ctx, userID, c.Param("id"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToDatabaseProfileResponse(profile))
}

// ListProfiles retrieves the caller's connection profiles
// GET /api/v1/databases
func (h *DatabaseHandler) ListProfiles(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	profiles, err := h.usecase.ListProfiles(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list profiles", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	items := dto.ToDatabaseProfileListResponse(profiles)
	SuccessResponse(c, ListResponse{Items: items, TotalCount: len(items)})
}

// UpdateProfile replaces a connection profile's settings
// PUT /api/v1/databases/:id
func (h *DatabaseHandler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.DatabaseProfileRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	profile := req.ToProfileEntity()
	profile.ID = c.Param("id")

	updated, err := h.usecase.UpdateProfile(ctx, userID, profile)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToDatabaseProfileResponse(updated))
}

// DeleteProfile removes a connection profile
// DELETE /api/v1/databases/:id
func (h *DatabaseHandler) DeleteProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(c)
	if !ok {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	if err := h.usecase.DeleteProfile(ctx, userID, c.Param("id")); err != nil {
		ErrorResponse(c, err)
		return
	}

	NoContentResponse(c)
}
