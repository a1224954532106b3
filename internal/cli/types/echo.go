package types

import "github.com/RahulRR-10/EchoSQL/internal/viz"

// Session represents one query session
type Session struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DatabaseID string `json:"database_id,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// SessionListData represents the paginated session list
type SessionListData struct {
	Sessions   []Session `json:"sessions"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// AskRequest sends one natural-language question
type AskRequest struct {
	SessionID  string `json:"session_id"`
	DatabaseID string `json:"database_id,omitempty"`
	Question   string `json:"question"`
}

// CreateSessionRequest starts a new session
type CreateSessionRequest struct {
	Title      string `json:"title,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// Message represents one question/answer exchange. Result keeps the
// server's column order for display.
type Message struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Question    string    `json:"question"`
	Query       string    `json:"query,omitempty"`
	QueryType   string    `json:"query_type,omitempty"`
	Result      viz.Table `json:"result"`
	Summary     string    `json:"summary,omitempty"`
	Title       string    `json:"title,omitempty"`
	Error       string    `json:"error,omitempty"`
	ExecutionMS int64     `json:"execution_ms"`
	CreatedAt   string    `json:"created_at"`
}

// Bookmark represents a saved question
type Bookmark struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Query     string `json:"query,omitempty"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

// AddBookmarkRequest saves a question
type AddBookmarkRequest struct {
	Question string `json:"question"`
	Query    string `json:"query,omitempty"`
	Title    string `json:"title,omitempty"`
}
