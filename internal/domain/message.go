package domain

import (
	"context"

	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// AskRequest is one natural-language question bound to a session and a
// database profile.
type AskRequest struct {
	SessionID  string
	DatabaseID string
	Question   string
}

// AgentAnswer is what the query agent produced for one question. A failed
// translation or execution comes back with ErrorMessage set rather than a
// transport error; the exchange is still persisted.
type AgentAnswer struct {
	Query          string
	QueryType      string // entity.QueryTypeSQL or entity.QueryTypeCypher
	Result         viz.Table
	Summary        string
	Title          string
	ThoughtProcess string
	DatabaseType   string
	ErrorMessage   string
}

// AgentClient reaches the external natural-language query service.
type AgentClient interface {
	// Ask forwards the question together with the connection profile the
	// agent should query against.
	Ask(ctx context.Context, question string, profile *entity.DatabaseProfile) (*AgentAnswer, error)
}

// Recommendation is the chart-recommendation service verdict.
type Recommendation struct {
	ShouldVisualize   bool
	Reason            string
	RecommendedGraphs []string
}

// RecommenderClient reaches the chart recommendation service. Failures are
// returned as errors; callers fall back to an empty recommendation list.
type RecommenderClient interface {
	Recommend(ctx context.Context, result viz.Table, question, query string) (*Recommendation, error)
}

// MessageRepository is the exchange persistence interface.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	GetByID(ctx context.Context, messageID string) (*entity.Message, error)

	ListBySession(ctx context.Context, sessionID string) ([]*entity.Message, error)

	CountBySession(ctx context.Context, sessionID string) (int, error)

	DeleteBySession(ctx context.Context, sessionID string) error
}

// MessageUsecase runs questions through the agent and persists the
// exchanges.
type MessageUsecase interface {
	// Ask executes one question: profile lookup, agent call, persistence,
	// session title update.
	Ask(ctx context.Context, userID string, req *AskRequest) (*entity.Message, error)

	GetMessage(ctx context.Context, userID, messageID string) (*entity.Message, error)

	ListMessages(ctx context.Context, userID, sessionID string) ([]*entity.Message, error)
}
