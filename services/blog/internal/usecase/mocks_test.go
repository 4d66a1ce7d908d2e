package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"blog-api/pkg/queue"
	"blog-api/services/blog/internal/entity"
	"blog-api/services/blog/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string) ([]*entity.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Post, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostRepository) Save(ctx context.Context, post *entity.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) FindByUserAndPost(ctx context.Context, userID, postID string) (*entity.Like, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Like), args.Error(1)
}

func (m *MockLikeRepository) Save(ctx context.Context, like *entity.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishNotificationTask(task queue.NotificationTask) error {
	args := m.Called(task)
	return args.Error(0)
}

type MockLikeCountCache struct {
	mock.Mock
}

func (m *MockLikeCountCache) Get(ctx context.Context, postID string) (int64, bool, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLikeCountCache) Generation(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeCountCache) Set(ctx context.Context, postID string, count, generation int64) error {
	args := m.Called(ctx, postID, count, generation)
	return args.Error(0)
}

func (m *MockLikeCountCache) Invalidate(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

var (
	_ persistent.UserRepository = (*MockUserRepository)(nil)
	_ persistent.PostRepository = (*MockPostRepository)(nil)
	_ persistent.LikeRepository = (*MockLikeRepository)(nil)
	_ Notifier                  = (*MockNotifier)(nil)
	_ LikeCountCache            = (*MockLikeCountCache)(nil)
)

// memStore is an in-memory backing for the three repositories. Likes are
// unique per (user, post) the same way the database index enforces it.
type memStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]entity.User
	posts map[string]entity.Post
	likes map[string]entity.Like
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]entity.User),
		posts: make(map[string]entity.Post),
		likes: make(map[string]entity.Like),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) likeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

func likeKey(userID, postID string) string {
	return userID + "|" + postID
}

type memUserRepository struct{ *memStore }

func (r memUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUserRepository) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%w: duplicate email", entity.ErrConflict)
		}
	}
	if user.ID == "" {
		user.ID = r.nextID("user")
	}
	r.users[user.ID] = *user
	return nil
}

func (r memUserRepository) Search(_ context.Context, query string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var result []*entity.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			u := u
			result = append(result, &u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type memPostRepository struct{ *memStore }

func (r memPostRepository) FindByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memPostRepository) FindByOwner(_ context.Context, ownerID string) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*entity.Post{}
	for _, p := range r.posts {
		if p.OwnerID == ownerID {
			p := p
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r memPostRepository) Save(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = r.nextID("post")
	}
	r.posts[post.ID] = *post
	return nil
}

type memLikeRepository struct{ *memStore }

func (r memLikeRepository) FindByUserAndPost(_ context.Context, userID, postID string) (*entity.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.likes[likeKey(userID, postID)]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r memLikeRepository) Save(_ context.Context, like *entity.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey(like.UserID, like.PostID)
	if _, ok := r.likes[key]; ok {
		return fmt.Errorf("%w: duplicate like", entity.ErrConflict)
	}
	like.ID = r.nextID("like")
	r.likes[key] = *like
	return nil
}

func (r memLikeRepository) CountByPost(_ context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, l := range r.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}
