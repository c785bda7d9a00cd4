package domain

import (
	"time"
)

// Product represents a catalog product. Products are read-only from this
// service's perspective; the catalog itself is managed elsewhere.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}
