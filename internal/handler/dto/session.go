package dto

import (
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
)

// CreateSessionRequest starts a new query session.
type CreateSessionRequest struct {
	Title      string `json:"title"`
	DatabaseID string `json:"database_id"`
}

// RenameSessionRequest updates the session title.
type RenameSessionRequest struct {
	Title string `json:"title" binding:"required"`
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DatabaseID string `json:"database_id,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// SessionListResponse is the paginated session list.
type SessionListResponse struct {
	Sessions   []*SessionResponse `json:"sessions"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// SessionReportResponse summarizes a session's exchanges.
type SessionReportResponse struct {
	Session        *SessionResponse `json:"session"`
	MessageCount   int              `json:"message_count"`
	FailedCount    int              `json:"failed_count"`
	AvgExecutionMS int64            `json:"avg_execution_ms"`
	DurationMS     int64            `json:"duration_ms"`
}

// ToSessionResponse converts entity.Session to SessionResponse DTO
func ToSessionResponse(session *entity.Session) *SessionResponse {
	return &SessionResponse{
		ID:         session.ID,
		Title:      session.Title,
		DatabaseID: session.DatabaseID,
		CreatedAt:  session.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  session.UpdatedAt.Format(time.RFC3339),
	}
}

// ToSessionListResponse converts a slice of entity.Session to SessionListResponse DTO
func ToSessionListResponse(sessions []*entity.Session, total, page, pageSize int) *SessionListResponse {
	responses := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToSessionResponse(s)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return &SessionListResponse{
		Sessions:   responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ToSessionReportResponse converts domain.SessionReport to SessionReportResponse DTO
func ToSessionReportResponse(report *domain.SessionReport) *SessionReportResponse {
	return &SessionReportResponse{
		Session:        ToSessionResponse(report.Session),
		MessageCount:   report.MessageCount,
		FailedCount:    report.FailedCount,
		AvgExecutionMS: report.AvgExecutionMS,
		DurationMS:     report.DurationMS,
	}
}
