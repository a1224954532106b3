package entity

import "time"

// Bookmark is a saved question a user wants to re-run later.
type Bookmark struct {
	ID        string
	UserID    string
	Question  string
	Query     string // generated query at save time, if any
	Title     string
	CreatedAt time.Time
}
