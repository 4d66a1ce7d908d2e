package main

import (
	"flag"
	"fmt"

	"blog-api/pkg/config"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
	"blog-api/pkg/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	var (
		usersCount = flag.Int("users", 20, "number of users to create")
		postsCount = flag.Int("posts", 50, "number of posts to create")
		seed       = flag.Int64("seed", 0, "faker seed, 0 picks a random one")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer database.Close(db)

	gofakeit.Seed(*seed)

	if err := seedDatabase(db, *usersCount, *postsCount, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, usersCount, postsCount int, log *logger.Logger) error {
	users := make([]*models.User, 0, usersCount)
	for i := 0; i < usersCount; i++ {
		user := &models.User{
			FirstName:     gofakeit.FirstName(),
			LastName:      gofakeit.LastName(),
			Email:         fmt.Sprintf("%s.%d@%s", gofakeit.Username(), gofakeit.Number(1000, 9999), gofakeit.DomainName()),
			AccountStatus: randomStatus(),
		}

		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user)
		if result.Error != nil {
			return fmt.Errorf("failed to create user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			log.Info("User %s already exists, skipping", user.Email)
			continue
		}

		log.Debug("Created user: %s %s (%s, %s)", user.FirstName, user.LastName, user.Email, user.AccountStatus)
		users = append(users, user)
	}
	log.Info("Created %d users", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, postsCount)
	for i := 0; i < postsCount; i++ {
		post := &models.Post{
			OwnerID: users[gofakeit.Number(0, len(users)-1)].ID,
			Entry:   gofakeit.Paragraph(1, gofakeit.Number(1, 4), 12, " "),
		}
		if err := db.Omit("Owner").Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Info("Created %d posts", len(posts))

	likes := 0
	for _, like := range likeCandidates(users, posts) {
		if !gofakeit.Bool() {
			continue
		}
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Omit("User", "Post").Create(like)
		if result.Error != nil {
			return fmt.Errorf("failed to create like: %w", result.Error)
		}
		likes += int(result.RowsAffected)
	}
	log.Info("Created %d likes", likes)

	return nil
}

// randomStatus favours confirmed accounts so that seeded data has likes.
func randomStatus() models.AccountStatus {
	switch n := gofakeit.Number(1, 10); {
	case n <= 6:
		return models.AccountStatusConfirmed
	case n <= 9:
		return models.AccountStatusNew
	default:
		return models.AccountStatusRemoved
	}
}

// likeCandidates returns every like the service itself would accept:
// confirmed likers on posts they do not own.
func likeCandidates(users []*models.User, posts []*models.Post) []*models.Like {
	var likes []*models.Like
	for _, u := range users {
		if u.AccountStatus != models.AccountStatusConfirmed {
			continue
		}
		for _, p := range posts {
			if p.OwnerID == u.ID {
				continue
			}
			likes = append(likes, &models.Like{UserID: u.ID, PostID: p.ID})
		}
	}
	return likes
}
