package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// messageUsecase implements MessageUsecase: the ask pipeline plus exchange
// lookups.
type messageUsecase struct {
	sessionRepo domain.SessionRepository
	messageRepo domain.MessageRepository
	profileRepo domain.DatabaseProfileRepository
	agent       domain.AgentClient
	logger      *slog.Logger
}

// NewMessageUsecase creates a new MessageUsecase instance.
func NewMessageUsecase(
	sessionRepo domain.SessionRepository,
	messageRepo domain.MessageRepository,
	profileRepo domain.DatabaseProfileRepository,
	agent domain.AgentClient,
	logger *slog.Logger,
) domain.MessageUsecase {
	return &messageUsecase{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
		agent:       agent,
		logger:      logger,
	}
}

// Ask runs one question end to end: ownership checks, agent call,
// persistence, session title update. Agent-reported failures are persisted
// like successes so the transcript stays complete.
func (u *messageUsecase) Ask(ctx context.Context, userID string, req *domain.AskRequest) (*entity.Message, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.NewInvalidInputError("question must not be empty")
	}

	session, err := u.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("session belongs to another user")
	}

	databaseID := req.DatabaseID
	if databaseID == "" {
		databaseID = session.DatabaseID
	}
	if databaseID == "" {
		return nil, domain.NewInvalidInputError("no database profile selected")
	}

	profile, err := u.profileRepo.GetByID(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, domain.NewForbiddenError("database profile belongs to another user")
	}

	start := time.Now()
	answer, err := u.agent.Ask(ctx, question, profile)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Milliseconds()

	message := &entity.Message{
		SessionID:      session.ID,
		Question:       question,
		Query:          answer.Query,
		QueryType:      answer.QueryType,
		Result:         answer.Result,
		Summary:        answer.Summary,
		Title:          answer.Title,
		ThoughtProcess: answer.ThoughtProcess,
		DatabaseType:   answer.DatabaseType,
		ErrorMessage:   answer.ErrorMessage,
		ExecutionMS:    elapsed,
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	u.updateSessionTitle(ctx, session, question, answer.Title)

	u.logger.Info("question answered",
		"session_id", session.ID,
		"message_id", message.ID,
		"query_type", message.QueryType,
		"rows", len(message.Result.Rows),
		"failed", message.Failed(),
		"execution_ms", elapsed,
	)
	return message, nil
}

// updateSessionTitle prefers the agent's generated title, falling back to
// the question itself while the session still has its placeholder name.
func (u *messageUsecase) updateSessionTitle(ctx context.Context, session *entity.Session, question, generated string) {
	title := generated
	if title == "" {
		if session.Title != "" && session.Title != "New session" {
			return
		}
		title = truncateTitle(question)
	}

	if err := u.sessionRepo.UpdateTitle(ctx, session.ID, title); err != nil {
		u.logger.Error("failed to update session title", "error", err, "session_id", session.ID)
	}
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) > 50 {
		return string(runes[:50]) + "…"
	}
	return s
}

func (u *messageUsecase) GetMessage(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := u.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	session, err := u.sessionRepo.GetByID(ctx, message.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("message belongs to another user")
	}
	return message, nil
}

func (u *messageUsecase) ListMessages(ctx context.Context, userID, sessionID string) ([]*entity.Message, error) {
	session, err := u.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, domain.NewForbiddenError("session belongs to another user")
	}

	return u.messageRepo.ListBySession(ctx, sessionID)
}
