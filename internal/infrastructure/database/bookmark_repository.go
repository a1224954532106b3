package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// bookmarkRepository is the MySQL implementation of BookmarkRepository.
type bookmarkRepository struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new BookmarkRepository instance.
func NewBookmarkRepository(db *sql.DB) domain.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

const bookmarkColumns = `id, user_id, question, query_text, title, created_at`

func scanBookmark(row interface{ Scan(...any) error }) (*entity.Bookmark, error) {
	var b entity.Bookmark
	err := row.Scan(&b.ID, &b.UserID, &b.Question, &b.Query, &b.Title, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) error {
	if bookmark.ID == "" {
		bookmark.ID = uuid.NewString()
	}
	bookmark.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, user_id, question, query_text, title, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		bookmark.ID, bookmark.UserID, bookmark.Question, bookmark.Query,
		bookmark.Title, bookmark.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) GetByID(ctx context.Context, bookmarkID string) (*entity.Bookmark, error) {
	if _, err := uuid.Parse(bookmarkID); err != nil {
		return nil, fmt.Errorf("invalid bookmark id: %w", err)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`, bookmarkID)

	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Bookmark", bookmarkID)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}
	return b, nil
}

// FindByQuestion matches case-insensitively; MySQL's default collation
// already compares that way, LOWER makes it explicit.
func (r *bookmarkRepository) FindByQuestion(ctx context.Context, userID, question string) (*entity.Bookmark, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks
		 WHERE user_id = ? AND LOWER(question) = LOWER(?)`, userID, question)

	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Bookmark", question)
		}
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	return b, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ?
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var result []*entity.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *bookmarkRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookmarks WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}

func (r *bookmarkRepository) DeleteOldest(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = ?
		 ORDER BY created_at ASC LIMIT 1`, userID)
	if err != nil {
		return fmt.Errorf("failed to evict oldest bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, bookmarkID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = ?`, bookmarkID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("Bookmark", bookmarkID)
	}
	return nil
}
