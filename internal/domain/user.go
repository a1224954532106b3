package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// UserRepository is the user persistence interface.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*entity.User, error)

	// GetByUsername is the login lookup.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	GetByID(ctx context.Context, userID string) (*entity.User, error)

	List(ctx context.Context, offset, limit int) ([]*entity.User, error)

	Count(ctx context.Context) (int, error)

	Delete(ctx context.Context, userID string) error

	UpdateLastLogin(ctx context.Context, userID string) error
}

// UserUsecase is the user business-logic interface.
type UserUsecase interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)

	// Login verifies credentials and returns the user.
	Login(ctx context.Context, username, password string) (*entity.User, error)

	GetUser(ctx context.Context, userID string) (*entity.User, error)

	ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int, error)

	DeleteUser(ctx context.Context, userID string) error
}
