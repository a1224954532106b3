package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// userUsecase implements UserUsecase.
type userUsecase struct {
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo domain.UserRepository,
	logger *slog.Logger,
) domain.UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (u *userUsecase) Register(ctx context.Context, username, password string) (*entity.User, error) {
	if err := u.validateRegisterRequest(username, password); err != nil {
		return nil, err
	}

	existingUser, err := u.userRepo.GetByUsername(ctx, username)
	if err == nil && existingUser != nil {
		return nil, domain.NewAlreadyExistsError("User", username)
	}
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := u.userRepo.Create(ctx, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.logger.Info("user registered successfully", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (u *userUsecase) Login(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewInvalidInputError("invalid username or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := verifyPassword(user.PasswordHash, password); err != nil {
		return nil, domain.NewInvalidInputError("invalid username or password")
	}

	// Last-login bookkeeping must not delay the login path.
	go func() {
		if err := u.userRepo.UpdateLastLogin(context.Background(), user.ID); err != nil {
			u.logger.Error("failed to update last login", "error", err, "user_id", user.ID)
		}
	}()

	u.logger.Info("user logged in successfully", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (u *userUsecase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) ListUsers(ctx context.Context, page, pageSize int) ([]*entity.User, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize

	users, err := u.userRepo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	u.logger.Info("user deleted successfully", "user_id", userID)
	return nil
}

// validateRegisterRequest checks username shape and password length.
func (u *userUsecase) validateRegisterRequest(username, password string) error {
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	if !usernameRegex.MatchString(username) {
		return domain.NewInvalidInputError("username must be 3-50 characters and contain only letters, numbers, and underscores")
	}

	if len(password) < 6 {
		return domain.NewInvalidInputError("password must be at least 6 characters")
	}
	if len(password) > 72 {
		return domain.NewInvalidInputError("password too long (max 72 characters)")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
