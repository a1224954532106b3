package entity

import (
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// Query language produced by the agent.
const (
	QueryTypeSQL    = "sql"
	QueryTypeCypher = "cypher"
)

// Message is one full question/answer exchange: the user's natural-language
// question, the query the agent generated, and the execution outcome.
// Result keeps the wire field order so the visualization engine sees the
// same structure the agent returned.
type Message struct {
	ID             string
	SessionID      string
	Question       string
	Query          string
	QueryType      string // QueryTypeSQL or QueryTypeCypher
	Result         viz.Table
	Summary        string
	Title          string
	ThoughtProcess string
	DatabaseType   string
	ErrorMessage   string // set when the agent reported a failure
	ExecutionMS    int64
	CreatedAt      time.Time
}

// Failed reports whether the agent returned an error for this exchange.
func (m *Message) Failed() bool {
	return m.ErrorMessage != ""
}
