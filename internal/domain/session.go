package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// SessionRepository is the query-session persistence interface.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	GetByID(ctx context.Context, sessionID string) (*entity.Session, error)

	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entity.Session, error)

	CountByUser(ctx context.Context, userID string) (int, error)

	UpdateTitle(ctx context.Context, sessionID, title string) error

	Delete(ctx context.Context, sessionID string) error
}

// SessionUsecase is the session business-logic interface. Every operation
// checks ownership against the calling user.
type SessionUsecase interface {
	CreateSession(ctx context.Context, userID, title, databaseID string) (*entity.Session, error)

	GetSession(ctx context.Context, userID, sessionID string) (*entity.Session, error)

	ListSessions(ctx context.Context, userID string, page, pageSize int) ([]*entity.Session, int, error)

	RenameSession(ctx context.Context, userID, sessionID, title string) error

	DeleteSession(ctx context.Context, userID, sessionID string) error
}
