package domain

import (
	"time"
)

// User is a directory entry used to label feedback and populate the
// identity-selection step. Identity is advisory; there is no authentication.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
