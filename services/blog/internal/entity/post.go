package entity

import "time"

// Post references its owner by id; the owner is resolved through the user repository.
type Post struct {
	ID        string
	OwnerID   string
	Entry     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostData is a post as returned to callers, with its like count.
type PostData struct {
	ID         string
	OwnerID    string
	Entry      string
	LikesCount int64
	CreatedAt  time.Time
}
