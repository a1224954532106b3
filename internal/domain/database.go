package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// DatabaseProfileRepository is the connection-profile persistence interface.
type DatabaseProfileRepository interface {
	Create(ctx context.Context, profile *entity.DatabaseProfile) error

	GetByID(ctx context.Context, profileID string) (*entity.DatabaseProfile, error)

	GetByName(ctx context.Context, userID, name string) (*entity.DatabaseProfile, error)

	ListByUser(ctx context.Context, userID string) ([]*entity.DatabaseProfile, error)

	Update(ctx context.Context, profile *entity.DatabaseProfile) error

	Delete(ctx context.Context, profileID string) error
}

// DatabaseUsecase is the connection-profile business-logic interface. Every
// operation checks ownership against the calling user.
type DatabaseUsecase interface {
	CreateProfile(ctx context.Context, userID string, profile *entity.DatabaseProfile) (*entity.DatabaseProfile, error)

	GetProfile(ctx context.Context, userID, profileID string) (*entity.DatabaseProfile, error)

	ListProfiles(ctx context.Context, userID string) ([]*entity.DatabaseProfile, error)

	UpdateProfile(ctx context.Context, userID string, profile *entity.DatabaseProfile) (*entity.DatabaseProfile, error)

	DeleteProfile(ctx context.Context, userID, profileID string) error
}
