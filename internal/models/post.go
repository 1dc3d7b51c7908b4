package models

import "time"

// Post is a single blog entry.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Edited reports whether the post was changed after creation.
func (p Post) Edited() bool {
	return p.UpdatedAt.After(p.CreatedAt)
}
