package persistent

import (
	"context"
	"errors"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
)

type PostRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Post, error)
	Save(ctx context.Context, post *entity.Post) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	if !validID(id) {
		return nil, nil
	}

	var postModel models.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Post, error) {
	if !validID(ownerID) {
		return []*entity.Post{}, nil
	}

	var postModels []models.Post
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Save(ctx context.Context, post *entity.Post) error {
	postModel := ToPostModel(post)

	var err error
	if postModel.ID == "" {
		err = r.db.WithContext(ctx).Omit("Owner").Create(postModel).Error
	} else {
		err = r.db.WithContext(ctx).Omit("Owner").Save(postModel).Error
	}
	if err != nil {
		return translateError(err)
	}

	*post = *ToPostEntity(postModel)
	return nil
}
