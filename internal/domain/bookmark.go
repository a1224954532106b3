package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// MaxBookmarksPerUser caps saved questions per user; adding past the cap
// evicts the oldest.
const MaxBookmarksPerUser = 50

// BookmarkRepository is the saved-question persistence interface.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) error

	GetByID(ctx context.Context, bookmarkID string) (*entity.Bookmark, error)

	// FindByQuestion matches case-insensitively for deduplication.
	FindByQuestion(ctx context.Context, userID, question string) (*entity.Bookmark, error)

	ListByUser(ctx context.Context, userID string) ([]*entity.Bookmark, error)

	CountByUser(ctx context.Context, userID string) (int, error)

	// DeleteOldest evicts the user's oldest bookmark.
	DeleteOldest(ctx context.Context, userID string) error

	Delete(ctx context.Context, bookmarkID string) error
}

// BookmarkUsecase is the saved-question business-logic interface.
type BookmarkUsecase interface {
	// AddBookmark saves a question, deduplicating case-insensitively and
	// evicting the oldest entry past the per-user cap.
	AddBookmark(ctx context.Context, userID string, bookmark *entity.Bookmark) (*entity.Bookmark, error)

	ListBookmarks(ctx context.Context, userID string) ([]*entity.Bookmark, error)

	// SearchBookmarks filters by case-insensitive substring over question
	// and title.
	SearchBookmarks(ctx context.Context, userID, term string) ([]*entity.Bookmark, error)

	DeleteBookmark(ctx context.Context, userID, bookmarkID string) error
}
