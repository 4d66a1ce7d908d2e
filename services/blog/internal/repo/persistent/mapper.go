package persistent

import (
	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		AccountStatus: entity.AccountStatus(m.AccountStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}

	return &models.User{
		ID:            e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		AccountStatus: models.AccountStatus(e.AccountStatus),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func ToPostEntity(m *models.Post) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Entry:     m.Entry,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *models.Post {
	if e == nil {
		return nil
	}

	return &models.Post{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Entry:     e.Entry,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToLikeEntity(m *models.Like) *entity.Like {
	if m == nil {
		return nil
	}

	return &entity.Like{
		ID:        m.ID,
		UserID:    m.UserID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
	}
}

func ToLikeModel(e *entity.Like) *models.Like {
	if e == nil {
		return nil
	}

	return &models.Like{
		ID:        e.ID,
		UserID:    e.UserID,
		PostID:    e.PostID,
		CreatedAt: e.CreatedAt,
	}
}
