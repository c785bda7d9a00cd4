package domain

import (
	"sort"
	"time"
)

// FeedbackEntry is one row of a product's merged feedback feed. An entry
// carries at least one of a rating value or a review text; a user who both
// rated and reviewed the product produces a single combined entry keyed by the
// review. Entry IDs are namespaced ("rating-<id>" / "review-<id>") so the two
// sources never collide.
type FeedbackEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	User       *User     `json:"user,omitempty"`
	Rating     *int      `json:"rating"`
	ReviewText *string   `json:"review_text"`
	ImageURL   *string   `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// MergeFeedback combines a product's ratings and reviews into one feed ordered
// by creation time, newest first. A rating whose user also reviewed the
// product is folded into that user's review entry (the review's timestamp
// wins); all other ratings become rating-only entries.
func MergeFeedback(ratings []Rating, reviews []Review) []FeedbackEntry {
	ratingByUser := make(map[string]Rating, len(ratings))
	for _, r := range ratings {
		ratingByUser[r.UserID] = r
	}

	reviewed := make(map[string]struct{}, len(reviews))
	for _, rv := range reviews {
		reviewed[rv.UserID] = struct{}{}
	}

	entries := make([]FeedbackEntry, 0, len(ratings)+len(reviews))

	for _, r := range ratings {
		if _, ok := reviewed[r.UserID]; ok {
			continue
		}
		value := r.Value
		entries = append(entries, FeedbackEntry{
			ID:        "rating-" + r.ID,
			UserID:    r.UserID,
			Rating:    &value,
			CreatedAt: r.CreatedAt,
		})
	}

	for _, rv := range reviews {
		text := rv.ReviewText
		entry := FeedbackEntry{
			ID:         "review-" + rv.ID,
			UserID:     rv.UserID,
			ReviewText: &text,
			ImageURL:   rv.ImageURL,
			CreatedAt:  rv.CreatedAt,
		}
		if r, ok := ratingByUser[rv.UserID]; ok {
			value := r.Value
			entry.Rating = &value
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	return entries
}

// LabelUsers attaches directory entries to feedback rows by user ID. Rows
// whose user is missing from the directory are left unlabeled rather than
// dropped.
func LabelUsers(entries []FeedbackEntry, users []User) {
	byID := make(map[string]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for i := range entries {
		if u, ok := byID[entries[i].UserID]; ok {
			user := u
			entries[i].User = &user
		}
	}
}
