// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by username or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidUsername is returned when a username is outside the allowed length.
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")

	// ErrInvalidPassword is returned when a password is outside the allowed length.
	ErrInvalidPassword = errors.New("password must be between 6 and 128 characters")
)
