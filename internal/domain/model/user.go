package model

import "time"

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}
