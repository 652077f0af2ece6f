// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user. Every tracked record's owner id refers to it.
	ID uint `gorm:"primaryKey"`

	// Username is the login name, unique across all users.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Password is the bcrypt hash of the user's password. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
