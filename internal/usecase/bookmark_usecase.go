package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// bookmarkUsecase implements BookmarkUsecase.
type bookmarkUsecase struct {
	bookmarkRepo domain.BookmarkRepository
	logger       *slog.Logger
}

// NewBookmarkUsecase creates a new BookmarkUsecase instance.
func NewBookmarkUsecase(
	bookmarkRepo domain.BookmarkRepository,
	logger *slog.Logger,
) domain.BookmarkUsecase {
	return &bookmarkUsecase{
		bookmarkRepo: bookmarkRepo,
		logger:       logger,
	}
}

// AddBookmark saves a question. A case-insensitive duplicate returns the
// existing bookmark; past the per-user cap the oldest entry is evicted.
func (u *bookmarkUsecase) AddBookmark(ctx context.Context, userID string, bookmark *entity.Bookmark) (*entity.Bookmark, error) {
	bookmark.Question = strings.TrimSpace(bookmark.Question)
	if bookmark.Question == "" {
		return nil, domain.NewInvalidInputError("question must not be empty")
	}
	bookmark.UserID = userID
	if bookmark.Title == "" {
		bookmark.Title = truncateTitle(bookmark.Question)
	}

	existing, err := u.bookmarkRepo.FindByQuestion(ctx, userID, bookmark.Question)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !domain.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check for duplicate bookmark: %w", err)
	}

	count, err := u.bookmarkRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	if count >= domain.MaxBookmarksPerUser {
		if err := u.bookmarkRepo.DeleteOldest(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to evict oldest bookmark: %w", err)
		}
	}

	if err := u.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	u.logger.Info("bookmark added", "bookmark_id", bookmark.ID, "user_id", userID)
	return bookmark, nil
}

func (u *bookmarkUsecase) ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	bookmarks, err := u.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (u *bookmarkUsecase) SearchBookmarks(ctx context.Context, userID, term string) ([]*entity.Bookmark, error) {
	bookmarks, err := u.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookmarks: %w", err)
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return bookmarks, nil
	}

	var matched []*entity.Bookmark
	for _, b := range bookmarks {
		if strings.Contains(strings.ToLower(b.Question), term) ||
			strings.Contains(strings.ToLower(b.Title), term) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (u *bookmarkUsecase) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	bookmark, err := u.bookmarkRepo.GetByID(ctx, bookmarkID)
	if err != nil {
		return err
	}
	if bookmark.UserID != userID {
		return domain.NewForbiddenError("bookmark belongs to another user")
	}

	if err := u.bookmarkRepo.Delete(ctx, bookmarkID); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	u.logger.Info("bookmark deleted", "bookmark_id", bookmarkID, "user_id", userID)
	return nil
}
