package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// sessionUsecase implements SessionUsecase.
type sessionUsecase struct {
	sessionRepo domain.SessionRepository
	messageRepo domain.MessageRepository
	logger      *slog.Logger
}

// NewSessionUsecase creates a new SessionUsecase instance.
func NewSessionUsecase(
	sessionRepo domain.SessionRepository,
	messageRepo domain.MessageRepository,
	logger *slog.Logger,
) domain.SessionUsecase {
	return &sessionUsecase{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (u *sessionUsecase) CreateSession(ctx context.Context, userID, title, databaseID string) (*entity.Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New session"
	}

	session := &entity.Session{
		UserID:     userID,
		Title:      title,
		DatabaseID: databaseID,
	}
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	u.logger.Info("session created", "session_id", session.ID, "user_id", userID)
	return session, nil
}

// getOwned fetches a session and enforces ownership.
func (u *sessionUsecase) getOwned(ctx context.Context, userID, sessionID string) (*entity.Session, error) {
	session, err := u.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("session belongs to another user")
	}
	return session, nil
}

func (u *sessionUsecase) GetSession(ctx context.Context, userID, sessionID string) (*entity.Session, error) {
	return u.getOwned(ctx, userID, sessionID)
}

func (u *sessionUsecase) ListSessions(ctx context.Context, userID string, page, pageSize int) ([]*entity.Session, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	sessions, err := u.sessionRepo.ListByUser(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	total, err := u.sessionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return sessions, total, nil
}

func (u *sessionUsecase) RenameSession(ctx context.Context, userID, sessionID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewInvalidInputError("title must not be empty")
	}

	if _, err := u.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}

	if err := u.sessionRepo.UpdateTitle(ctx, sessionID, title); err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	return nil
}

// DeleteSession removes the session and its exchanges.
func (u *sessionUsecase) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if _, err := u.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}

	if err := u.messageRepo.DeleteBySession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}
	if err := u.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	u.logger.Info("session deleted", "session_id", sessionID, "user_id", userID)
	return nil
}
