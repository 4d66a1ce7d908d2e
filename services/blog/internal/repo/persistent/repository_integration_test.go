//go:build integration

package persistent

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"blog-api/migrations"
	"blog-api/pkg/database"
	"blog-api/services/blog/internal/entity"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("blog_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("set goose dialect: %v", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	db, err := gorm.Open(postgres.Open(connStr), database.Options())
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	return db
}

type repos struct {
	users UserRepository
	posts PostRepository
	likes LikeRepository
}

func newRepos(db *gorm.DB) repos {
	return repos{
		users: NewUserRepository(db),
		posts: NewPostRepository(db),
		likes: NewLikeRepository(db),
	}
}

func saveUser(t *testing.T, r repos, first, last, email string, status entity.AccountStatus) *entity.User {
	t.Helper()
	u := &entity.User{FirstName: first, LastName: last, Email: email, AccountStatus: status}
	require.NoError(t, r.users.Save(context.Background(), u))
	require.NotEmpty(t, u.ID)
	return u
}

func TestRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupTestDB(t)
	r := newRepos(db)
	ctx := context.Background()

	john := saveUser(t, r, "John", "Steward", "john@domain.com", entity.AccountStatusNew)
	anna := saveUser(t, r, "Anna", "Kowalska", "anna@other.org", entity.AccountStatusConfirmed)

	t.Run("find user", func(t *testing.T) {
		got, err := r.users.FindByID(ctx, john.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "john@domain.com", got.Email)
		assert.Equal(t, entity.AccountStatusNew, got.AccountStatus)

		got, err = r.users.FindByID(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = r.users.FindByID(ctx, "1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update user", func(t *testing.T) {
		john.AccountStatus = entity.AccountStatusConfirmed
		require.NoError(t, r.users.Save(ctx, john))

		got, err := r.users.FindByID(ctx, john.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.AccountStatusConfirmed, got.AccountStatus)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := &entity.User{FirstName: "Other", Email: "john@domain.com", AccountStatus: entity.AccountStatusNew}
		err := r.users.Save(ctx, dup)
		assert.ErrorIs(t, err, entity.ErrConflict)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		for _, q := range []string{"JoHn", "STEW", "Domain.COM"} {
			found, err := r.users.Search(ctx, q)
			require.NoError(t, err)
			require.Len(t, found, 1, q)
			assert.Equal(t, john.ID, found[0].ID)
		}

		found, err := r.users.Search(ctx, "kOWALSKA")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, anna.ID, found[0].ID)

		found, err = r.users.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, found)

		found, err = r.users.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	post := &entity.Post{OwnerID: john.ID, Entry: "hello"}
	require.NoError(t, r.posts.Save(ctx, post))
	require.NotEmpty(t, post.ID)

	t.Run("posts by owner", func(t *testing.T) {
		second := &entity.Post{OwnerID: john.ID, Entry: "second"}
		require.NoError(t, r.posts.Save(ctx, second))

		posts, err := r.posts.FindByOwner(ctx, john.ID)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, second.ID, posts[0].ID)

		posts, err = r.posts.FindByOwner(ctx, anna.ID)
		require.NoError(t, err)
		assert.Empty(t, posts)

		got, err := r.posts.FindByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("likes", func(t *testing.T) {
		existing, err := r.likes.FindByUserAndPost(ctx, anna.ID, post.ID)
		require.NoError(t, err)
		assert.Nil(t, existing)

		like := &entity.Like{UserID: anna.ID, PostID: post.ID}
		require.NoError(t, r.likes.Save(ctx, like))
		assert.NotEmpty(t, like.ID)

		existing, err = r.likes.FindByUserAndPost(ctx, anna.ID, post.ID)
		require.NoError(t, err)
		require.NotNil(t, existing)
		assert.Equal(t, like.ID, existing.ID)

		err = r.likes.Save(ctx, &entity.Like{UserID: anna.ID, PostID: post.ID})
		assert.ErrorIs(t, err, entity.ErrConflict)

		count, err := r.likes.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestLikeRepository_ConcurrentSaveKeepsOneRow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db := setupTestDB(t)
	r := newRepos(db)
	ctx := context.Background()

	owner := saveUser(t, r, "Owner", "One", "owner@domain.com", entity.AccountStatusConfirmed)
	liker := saveUser(t, r, "Liker", "Two", "liker@domain.com", entity.AccountStatusConfirmed)
	post := &entity.Post{OwnerID: owner.ID, Entry: "race"}
	require.NoError(t, r.posts.Save(ctx, post))

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.likes.Save(ctx, &entity.Like{UserID: liker.ID, PostID: post.ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, entity.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	count, err := r.likes.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
