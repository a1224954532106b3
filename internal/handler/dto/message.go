package dto

import (
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// AskRequest is one natural-language question.
type AskRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	DatabaseID string `json:"database_id"`
	Question   string `json:"question" binding:"required"`
}

// MessageResponse is the public view of one exchange. Result serializes as
// the ordered array of row objects the agent returned.
type MessageResponse struct {
	ID             string    `json:"id"`
	SessionID      string    `json:"session_id"`
	Question       string    `json:"question"`
	Query          string    `json:"query,omitempty"`
	QueryType      string    `json:"query_type,omitempty"`
	Result         viz.Table `json:"result"`
	Summary        string    `json:"summary,omitempty"`
	Title          string    `json:"title,omitempty"`
	ThoughtProcess string    `json:"thought_process,omitempty"`
	DatabaseType   string    `json:"database_type,omitempty"`
	Error          string    `json:"error,omitempty"`
	ExecutionMS    int64     `json:"execution_ms"`
	CreatedAt      string    `json:"created_at"`
}

// ToMessageResponse converts entity.Message to MessageResponse DTO
func ToMessageResponse(message *entity.Message) *MessageResponse {
	return &MessageResponse{
		ID:             message.ID,
		SessionID:      message.SessionID,
		Question:       message.Question,
		Query:          message.Query,
		QueryType:      message.QueryType,
		Result:         message.Result,
		Summary:        message.Summary,
		Title:          message.Title,
		ThoughtProcess: message.ThoughtProcess,
		DatabaseType:   message.DatabaseType,
		Error:          message.ErrorMessage,
		ExecutionMS:    message.ExecutionMS,
		CreatedAt:      message.CreatedAt.Format(time.RFC3339),
	}
}

// ToMessageListResponse converts a slice of entity.Message to DTOs
func ToMessageListResponse(messages []*entity.Message) []*MessageResponse {
	responses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = ToMessageResponse(m)
	}
	return responses
}
