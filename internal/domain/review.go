package domain

import (
	"time"
)

// Review is a user's free-text feedback for a product, optionally carrying an
// image hosted by the media collaborator. At most one Review exists per
// (product, user) pair; reviews are never updated or deleted.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UserID     string    `json:"user_id"`
	ReviewText string    `json:"review_text"`
	ImageURL   *string   `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}
