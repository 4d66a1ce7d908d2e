package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"blog-api/pkg/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

const (
	likeCountTTL = 24 * time.Hour
	// generations outlive every count written under them
	likeGenerationTTL = 2 * likeCountTTL
)

// LikeCountCache keeps per-post like counts under post:likes:<post id>.
// Every invalidation bumps post:likes:gen:<post id>; a count computed before
// the bump is never stored after it.
type LikeCountCache struct {
	client *redis.Client
}

func NewLikeCountCache(client *redis.Client) *LikeCountCache {
	return &LikeCountCache{client: client}
}

func likeCountKey(postID string) string {
	return fmt.Sprintf("post:likes:%s", postID)
}

func likeGenerationKey(postID string) string {
	return fmt.Sprintf("post:likes:gen:%s", postID)
}

// Get reports the cached count. A miss is (0, false, nil).
func (c *LikeCountCache) Get(ctx context.Context, postID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, likeCountKey(postID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt like count for post %s: %w", postID, err)
	}
	return count, true, nil
}

// Generation returns the current invalidation generation of a post. Read it
// before counting likes and pass it to Set.
func (c *LikeCountCache) Generation(ctx context.Context, postID string) (int64, error) {
	gen, err := c.client.Get(ctx, likeGenerationKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set stores count only while the post is still at generation. A count that
// lost the race against Invalidate is dropped without an error.
func (c *LikeCountCache) Set(ctx context.Context, postID string, count, generation int64) error {
	genKey := likeGenerationKey(postID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, likeCountKey(postID), count, likeCountTTL)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate drops the cached count and moves the post to a new generation.
func (c *LikeCountCache) Invalidate(ctx context.Context, postID string) error {
	genKey := likeGenerationKey(postID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, likeGenerationTTL)
		pipe.Del(ctx, likeCountKey(postID))
		return nil
	})
	return err
}
