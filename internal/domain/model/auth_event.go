package model

import (
	"time"
)

type AuthEventKind string

const (
	EventRegister     AuthEventKind = "register"
	EventLoginSuccess AuthEventKind = "login_success"
	EventLoginFailure AuthEventKind = "login_failure"
)

// AuthEvent is one entry of a user's credential activity trail.
type AuthEvent struct {
	ID         string        `json:"id"`
	Username   string        `json:"username"`
	Kind       AuthEventKind `json:"kind"`
	RemoteAddr string        `json:"remote_addr,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
