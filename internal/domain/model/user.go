package model

import (
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"` // Never exposed
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
}
