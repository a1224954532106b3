package entity

import "time"

// Session groups a user's query exchanges. The title starts as the first
// question and is overwritten by the agent's generated title.
type Session struct {
	ID         string
	UserID     string
	Title      string
	DatabaseID string // database profile the session queries against
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
