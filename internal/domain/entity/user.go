package entity

import "time"

// User is the domain-layer user record; serialization lives in the DTOs.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	LastLoginAt  *time.Time
	DeletedAt    *time.Time // soft delete marker
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
