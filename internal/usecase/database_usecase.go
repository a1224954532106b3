package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// databaseUsecase implements DatabaseUsecase.
type databaseUsecase struct {
	profileRepo domain.DatabaseProfileRepository
	logger      *slog.Logger
}

// NewDatabaseUsecase creates a new DatabaseUsecase instance.
func NewDatabaseUsecase(
	profileRepo domain.DatabaseProfileRepository,
	logger *slog.Logger,
) domain.DatabaseUsecase {
	return &databaseUsecase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// validateProfile checks the fields the agent needs to connect.
func validateProfile(profile *entity.DatabaseProfile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return domain.NewInvalidInputError("profile name must not be empty")
	}
	if !entity.ValidDatabaseType(profile.Type) {
		return domain.NewInvalidInputError("database type must be one of mysql, postgresql, neo4j")
	}
	if profile.IsGraph() {
		if profile.URI == "" {
			return domain.NewInvalidInputError("neo4j profiles require a uri")
		}
		return nil
	}
	if profile.Host == "" {
		return domain.NewInvalidInputError("relational profiles require a host")
	}
	if profile.Database == "" {
		return domain.NewInvalidInputError("relational profiles require a database name")
	}
	return nil
}

func (u *databaseUsecase) CreateProfile(ctx context.Context, userID string, profile *entity.DatabaseProfile) (*entity.DatabaseProfile, error) {
	profile.UserID = userID
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := u.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	u.logger.Info("database profile created",
		"profile_id", profile.ID, "user_id", userID, "type", profile.Type)
	return profile, nil
}

// getOwned fetches a profile and enforces ownership.
func (u *databaseUsecase) getOwned(ctx context.Context, userID, profileID string) (*entity.DatabaseProfile, error) {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, domain.NewForbiddenError("database profile belongs to another user")
	}
	return profile, nil
}

func (u *databaseUsecase) GetProfile(ctx context.Context, userID, profileID string) (*entity.DatabaseProfile, error) {
	return u.getOwned(ctx, userID, profileID)
}

func (u *databaseUsecase) ListProfiles(ctx context.Context, userID string) ([]*entity.DatabaseProfile, error) {
	profiles, err := u.profileRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list database profiles: %w", err)
	}
	return profiles, nil
}

func (u *databaseUsecase) UpdateProfile(ctx context.Context, userID string, profile *entity.DatabaseProfile) (*entity.DatabaseProfile, error) {
	existing, err := u.getOwned(ctx, userID, profile.ID)
	if err != nil {
		return nil, err
	}

	profile.UserID = existing.UserID
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	u.logger.Info("database profile updated", "profile_id", profile.ID, "user_id", userID)
	return profile, nil
}

func (u *databaseUsecase) DeleteProfile(ctx context.Context, userID, profileID string) error {
	if _, err := u.getOwned(ctx, userID, profileID); err != nil {
		return err
	}

	if err := u.profileRepo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("failed to delete database profile: %w", err)
	}

	u.logger.Info("database profile deleted", "profile_id", profileID, "user_id", userID)
	return nil
}
