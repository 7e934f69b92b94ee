// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published after a successful registration.
// Downstream consumers (welcome mail, analytics) get enough context
// to act without querying the primary database.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	UserName     string `json:"user_name"`
	RegisteredAt string `json:"registered_at"`
}

// UserLoggedInEvent is published after a successful login.
type UserLoggedInEvent struct {
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email"`
	LoggedInAt string `json:"logged_in_at"`
}
