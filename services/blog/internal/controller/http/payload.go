package http

import (
	"time"

	"blog-api/services/blog/internal/entity"
)

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

type CreatePostRequest struct {
	Entry string `json:"entry" binding:"required"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type UserResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	AccountStatus string `json:"accountStatus"`
}

type PostResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Entry      string    `json:"entry"`
	LikesCount int64     `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		AccountStatus: string(u.AccountStatus),
	}
}

func toPostResponse(p *entity.PostData) PostResponse {
	return PostResponse{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Entry:      p.Entry,
		LikesCount: p.LikesCount,
		CreatedAt:  p.CreatedAt,
	}
}
