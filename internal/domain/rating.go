package domain

import (
	"time"
)

// Rating value bounds. Values outside [MinRating, MaxRating] are rejected
// before any store access.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a user's numeric score for a product. At most one Rating exists
// per (product, user) pair; ratings are never updated or deleted.
type Rating struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Value     int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidValue reports whether v lies within the allowed rating range.
func ValidValue(v int) bool {
	return v >= MinRating && v <= MaxRating
}
