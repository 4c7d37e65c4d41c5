package models

import "errors"

var (
	// ErrUserNotFound is returned when a requested user id is absent from the store
	ErrUserNotFound = errors.New("user not found")

	// ErrBetNotFound is returned when a requested bet id is absent from the store
	ErrBetNotFound = errors.New("bet not found")

	// ErrReflectionNotFound is returned when a requested reflection id is absent from the store
	ErrReflectionNotFound = errors.New("reflection not found")

	// ErrEmailTaken is returned when registering a user with an email that is already in use
	ErrEmailTaken = errors.New("email already in use")
)
