package service

import (
	"time"

	"inkpost/internal/models"
)

// PostInput is the editable part of a post as submitted by the admin forms.
type PostInput struct {
	Title string
	Body  string
}

// PostPage is one page of the home listing.
type PostPage struct {
	Posts      []models.Post
	Current    int
	NextPage   int // 0 when there is no next page
	TotalPages int
}

// HasNext reports whether a next page link should be offered.
func (p PostPage) HasNext() bool { return p.NextPage > 0 }

// Session is a freshly minted login token.
type Session struct {
	Token     string
	ExpiresAt time.Time // zero for tokens without expiry
}
