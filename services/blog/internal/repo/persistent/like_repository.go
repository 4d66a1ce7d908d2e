package persistent

import (
	"context"
	"errors"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
)

type LikeRepository interface {
	FindByUserAndPost(ctx context.Context, userID, postID string) (*entity.Like, error)
	// Save returns an error wrapping entity.ErrConflict when the (user, post) pair already exists.
	Save(ctx context.Context, like *entity.Like) error
	CountByPost(ctx context.Context, postID string) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) FindByUserAndPost(ctx context.Context, userID, postID string) (*entity.Like, error) {
	if !validID(userID) || !validID(postID) {
		return nil, nil
	}

	var likeModel models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&likeModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToLikeEntity(&likeModel), nil
}

func (r *likeRepository) Save(ctx context.Context, like *entity.Like) error {
	likeModel := ToLikeModel(like)
	if err := r.db.WithContext(ctx).Omit("User", "Post").Create(likeModel).Error; err != nil {
		return translateError(err)
	}

	*like = *ToLikeEntity(likeModel)
	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	if !validID(postID) {
		return 0, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
