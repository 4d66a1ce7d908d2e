package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog-api/pkg/logger"
	"blog-api/pkg/metrics"
	"blog-api/pkg/queue"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"
)

type LikeUseCase interface {
	// AddLike records that likerID likes postID. Liking an already liked post
	// succeeds without creating a second record.
	AddLike(ctx context.Context, likerID, postID string) error
}

// Notifier publishes notification tasks for downstream workers.
type Notifier interface {
	PublishNotificationTask(task queue.NotificationTask) error
}

// LikeCountCache caches like counts per post. Set only stores a count if no
// Invalidate happened since the generation it was computed under.
type LikeCountCache interface {
	Get(ctx context.Context, postID string) (int64, bool, error)
	Generation(ctx context.Context, postID string) (int64, error)
	Set(ctx context.Context, postID string, count, generation int64) error
	Invalidate(ctx context.Context, postID string) error
}

const likeNotificationPriority = 3

type likeUseCase struct {
	userRepo persistent.UserRepository
	postRepo persistent.PostRepository
	likeRepo persistent.LikeRepository
	cache    LikeCountCache
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewLikeUseCase builds the like engine. cache, notifier and m may be nil.
func NewLikeUseCase(
	userRepo persistent.UserRepository,
	postRepo persistent.PostRepository,
	likeRepo persistent.LikeRepository,
	cache LikeCountCache,
	notifier Notifier,
	m *metrics.Metrics,
	logger *logger.Logger,
) LikeUseCase {
	return &likeUseCase{
		userRepo: userRepo,
		postRepo: postRepo,
		likeRepo: likeRepo,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

func (uc *likeUseCase) AddLike(ctx context.Context, likerID, postID string) error {
	like, ownerID, err := uc.addLike(ctx, likerID, postID)
	uc.metrics.LikeOutcome(likeOutcome(like, err))
	if err != nil {
		return err
	}
	if like == nil {
		uc.logger.Debug("User %s already likes post %s", likerID, postID)
		return nil
	}

	uc.logger.Info("User %s liked post %s", likerID, postID)
	uc.afterLike(ctx, like, ownerID)
	return nil
}

// addLike runs the checks in order and stops at the first failure. It returns
// a nil like when the pair was already liked.
func (uc *likeUseCase) addLike(ctx context.Context, likerID, postID string) (*entity.Like, string, error) {
	post, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		uc.logger.Error("Failed to load post %s: %v", postID, err)
		return nil, "", fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, "", entity.ErrPostNotFound
	}

	owner, err := uc.userRepo.FindByID(ctx, post.OwnerID)
	if err != nil {
		uc.logger.Error("Failed to load owner %s of post %s: %v", post.OwnerID, postID, err)
		return nil, "", fmt.Errorf("failed to load post owner: %w", err)
	}
	if owner == nil {
		uc.logger.Error("Post %s references missing owner %s", postID, post.OwnerID)
		return nil, "", entity.ErrUserNotFound
	}

	liker, err := uc.userRepo.FindByID(ctx, likerID)
	if err != nil {
		uc.logger.Error("Failed to load user %s: %v", likerID, err)
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}
	if liker == nil {
		return nil, "", entity.ErrUserNotFound
	}

	// Self-like wins over any account status problem.
	if liker.ID == owner.ID {
		return nil, "", entity.ErrSelfLike
	}

	switch liker.AccountStatus {
	case entity.AccountStatusConfirmed:
	case entity.AccountStatusRemoved:
		return nil, "", entity.ErrUserStatusRemoved
	default:
		return nil, "", entity.ErrUserNotConfirmed
	}

	existing, err := uc.likeRepo.FindByUserAndPost(ctx, liker.ID, post.ID)
	if err != nil {
		uc.logger.Error("Failed to check like status of user %s on post %s: %v", liker.ID, post.ID, err)
		return nil, "", fmt.Errorf("failed to check like status: %w", err)
	}
	if existing != nil {
		return nil, owner.ID, nil
	}

	like := &entity.Like{UserID: liker.ID, PostID: post.ID}
	if err := uc.likeRepo.Save(ctx, like); err != nil {
		// A concurrent request stored the same pair first.
		if errors.Is(err, entity.ErrConflict) {
			return nil, owner.ID, nil
		}
		uc.logger.Error("Failed to save like of user %s on post %s: %v", liker.ID, post.ID, err)
		return nil, "", fmt.Errorf("failed to like post: %w", err)
	}
	return like, owner.ID, nil
}

func (uc *likeUseCase) afterLike(ctx context.Context, like *entity.Like, ownerID string) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, like.PostID); err != nil {
			uc.logger.Warn("Failed to invalidate like count of post %s: %v", like.PostID, err)
		}
	}

	if uc.notifier == nil {
		return
	}
	task := queue.NotificationTask{
		Type:     "like",
		UserID:   ownerID,
		LikerID:  like.UserID,
		PostID:   like.PostID,
		Priority: likeNotificationPriority,
	}
	if err := uc.notifier.PublishNotificationTask(task); err != nil {
		uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like notification for post %s: %v", like.PostID, err)
	}
}

func likeOutcome(like *entity.Like, err error) string {
	switch {
	case err == nil && like != nil:
		return "created"
	case err == nil:
		return "already_liked"
	case errors.Is(err, entity.ErrPostNotFound):
		return "post_not_found"
	case errors.Is(err, entity.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, entity.ErrSelfLike):
		return "self_like"
	case errors.Is(err, entity.ErrUserStatusRemoved):
		return "user_removed"
	case errors.Is(err, entity.ErrUserNotConfirmed):
		return "user_not_confirmed"
	default:
		return "error"
	}
}
