package entity

import "time"

// Like records that a user likes a post; there is at most one per (user, post).
type Like struct {
	ID        string
	UserID    string
	PostID    string
	CreatedAt time.Time
}
