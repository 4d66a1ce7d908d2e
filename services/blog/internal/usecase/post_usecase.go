package usecase

import (
	"context"
	"fmt"

	"blog-api/pkg/logger"
	"blog-api/pkg/metrics"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, ownerID, entry string) (string, error)
	GetPost(ctx context.Context, postID string) (*entity.PostData, error)
	GetUserPosts(ctx context.Context, userID string) ([]*entity.PostData, error)
}

type postUseCase struct {
	userRepo persistent.UserRepository
	postRepo persistent.PostRepository
	likeRepo persistent.LikeRepository
	cache    LikeCountCache
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewPostUseCase(
	userRepo persistent.UserRepository,
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	cache LikeCountCache,
	m *metrics.Metrics,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		userRepo: userRepo,
		postRepo: postRepo,
		likeRepo: likeRepo,
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

func (uc *postUseCase) CreatePost(ctx context.Context, ownerID, entry string) (string, error) {
	owner, err := uc.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		uc.logger.Error("Failed to load user %s: %v", ownerID, err)
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if owner == nil {
		return "", entity.ErrUserNotFound
	}
	if owner.AccountStatus == entity.AccountStatusRemoved {
		return "", entity.ErrUserStatusRemoved
	}

	post := &entity.Post{OwnerID: owner.ID, Entry: entry}
	if err := uc.postRepo.Save(ctx, post); err != nil {
		uc.logger.Error("Failed to create post for user %s: %v", ownerID, err)
		return "", fmt.Errorf("failed to create post: %w", err)
	}

	uc.metrics.PostCreated()
	return post.ID, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.PostData, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		uc.logger.Error("Failed to load post %s: %v", postID, err)
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, entity.ErrPostNotFound
	}
	return uc.toPostData(ctx, post)
}

func (uc *postUseCase) GetUserPosts(ctx context.Context, userID string) ([]*entity.PostData, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to load user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}

	posts, err := uc.postRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		uc.logger.Error("Failed to load posts of user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	result := make([]*entity.PostData, 0, len(posts))
	for _, post := range posts {
		data, err := uc.toPostData(ctx, post)
		if err != nil {
			return nil, err
		}
		result = append(result, data)
	}
	return result, nil
}

func (uc *postUseCase) toPostData(ctx context.Context, post *entity.Post) (*entity.PostData, error) {
	count, err := uc.likeCount(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return &entity.PostData{
		ID:         post.ID,
		OwnerID:    post.OwnerID,
		Entry:      post.Entry,
		LikesCount: count,
		CreatedAt:  post.CreatedAt,
	}, nil
}

// likeCount reads through the cache. Cache failures fall back to the database
// and leave the cache alone.
func (uc *postUseCase) likeCount(ctx context.Context, postID string) (int64, error) {
	cacheable := false
	var generation int64
	if uc.cache != nil {
		count, ok, err := uc.cache.Get(ctx, postID)
		switch {
		case err != nil:
			uc.logger.Warn("Failed to read cached like count of post %s: %v", postID, err)
		case ok:
			return count, nil
		default:
			// the generation has to be read before counting
			generation, err = uc.cache.Generation(ctx, postID)
			if err != nil {
				uc.logger.Warn("Failed to read like count generation of post %s: %v", postID, err)
			} else {
				cacheable = true
			}
		}
	}

	count, err := uc.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		uc.logger.Error("Failed to count likes of post %s: %v", postID, err)
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	if cacheable {
		if err := uc.cache.Set(ctx, postID, count, generation); err != nil {
			uc.logger.Warn("Failed to cache like count of post %s: %v", postID, err)
		}
	}
	return count, nil
}
