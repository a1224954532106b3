package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

func TestAddBookmark(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())
	ctx := context.Background()

	b, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: "total sales by region"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", b.UserID)
	assert.Equal(t, "total sales by region", b.Title, "default title is the question")
	assert.Len(t, repo.bookmarks, 1)
}

func TestAddBookmarkDefaultTitleTruncates(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())

	long := strings.Repeat("q", 80)
	b, err := uc.AddBookmark(context.Background(), "u-1", &entity.Bookmark{Question: long})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("q", 50)+"…", b.Title)
}

func TestAddBookmarkDeduplicates(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())
	ctx := context.Background()

	first, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: "Total Sales"})
	require.NoError(t, err)

	// Case-insensitive duplicate returns the existing entry.
	second, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: "total sales"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.bookmarks, 1)

	// Another user can save the same question.
	_, err = uc.AddBookmark(ctx, "u-2", &entity.Bookmark{Question: "total sales"})
	require.NoError(t, err)
	assert.Len(t, repo.bookmarks, 2)
}

func TestAddBookmarkEvictsOldestAtCap(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())
	ctx := context.Background()

	for i := 0; i < domain.MaxBookmarksPerUser; i++ {
		_, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{
			Question: fmt.Sprintf("question %d", i),
		})
		require.NoError(t, err)
	}
	require.Len(t, repo.bookmarks, domain.MaxBookmarksPerUser)

	_, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: "one more"})
	require.NoError(t, err)
	assert.Len(t, repo.bookmarks, domain.MaxBookmarksPerUser, "cap holds")

	_, err = repo.FindByQuestion(ctx, "u-1", "question 0")
	assert.True(t, domain.IsNotFound(err), "oldest entry was evicted")
}

func TestAddBookmarkRejectsEmptyQuestion(t *testing.T) {
	uc := NewBookmarkUsecase(newFakeBookmarkRepo(), discardLogger())
	_, err := uc.AddBookmark(context.Background(), "u-1", &entity.Bookmark{Question: "  "})
	assert.True(t, domain.IsInvalidInput(err))
}

func TestSearchBookmarks(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())
	ctx := context.Background()

	for _, q := range []string{"total sales by region", "active users today", "sales per product"} {
		_, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: q})
		require.NoError(t, err)
	}

	got, err := uc.SearchBookmarks(ctx, "u-1", "SALES")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := uc.SearchBookmarks(ctx, "u-1", "  ")
	require.NoError(t, err)
	assert.Len(t, all, 3, "blank term returns everything")

	none, err := uc.SearchBookmarks(ctx, "u-1", "inventory")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteBookmarkOwnership(t *testing.T) {
	repo := newFakeBookmarkRepo()
	uc := NewBookmarkUsecase(repo, discardLogger())
	ctx := context.Background()

	b, err := uc.AddBookmark(ctx, "u-1", &entity.Bookmark{Question: "q"})
	require.NoError(t, err)

	err = uc.DeleteBookmark(ctx, "u-2", b.ID)
	assert.True(t, domain.IsForbidden(err))

	require.NoError(t, uc.DeleteBookmark(ctx, "u-1", b.ID))
	assert.Empty(t, repo.bookmarks)
}
