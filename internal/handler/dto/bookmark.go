package dto

import (
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// AddBookmarkRequest saves a question for later reuse.
type AddBookmarkRequest struct {
	Question string `json:"question" binding:"required"`
	Query    string `json:"query"`
	Title    string `json:"title"`
}

// BookmarkResponse is the public view of a bookmark.
type BookmarkResponse struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Query     string `json:"query,omitempty"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// ToBookmarkResponse converts entity.Bookmark to BookmarkResponse DTO
func ToBookmarkResponse(bookmark *entity.Bookmark) *BookmarkResponse {
	return &BookmarkResponse{
		ID:        bookmark.ID,
		Question:  bookmark.Question,
		Query:     bookmark.Query,
		Title:     bookmark.Title,
		CreatedAt: bookmark.CreatedAt.Format(time.RFC3339),
	}
}

// ToBookmarkListResponse converts a slice of bookmarks to DTOs
func ToBookmarkListResponse(bookmarks []*entity.Bookmark) []*BookmarkResponse {
	responses := make([]*BookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		responses[i] = ToBookmarkResponse(b)
	}
	return responses
}
