package entity

import "time"

// Supported database profile types.
const (
	DatabaseTypeMySQL      = "mysql"
	DatabaseTypePostgreSQL = "postgresql"
	DatabaseTypeNeo4j      = "neo4j"
)

// DatabaseProfile is a user-owned connection target the agent service
// queries on the user's behalf. Graph databases use URI, relational ones
// host/port.
type DatabaseProfile struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	URI       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGraph reports whether the profile targets a graph database.
func (p *DatabaseProfile) IsGraph() bool {
	return p.Type == DatabaseTypeNeo4j
}

// ValidDatabaseType reports whether t names a supported profile type.
func ValidDatabaseType(t string) bool {
	switch t {
	case DatabaseTypeMySQL, DatabaseTypePostgreSQL, DatabaseTypeNeo4j:
		return true
	}
	return false
}
