package persistent

import (
	"context"
	"errors"
	"strings"

	"blog-api/pkg/models"
	"blog-api/services/blog/internal/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	// FindByID returns nil without an error when no user has the id.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// Save inserts the user when it has no id yet, assigning one, and updates it otherwise.
	Save(ctx context.Context, user *entity.User) error
	// Search matches query case-insensitively as a substring of first name, last name or email.
	Search(ctx context.Context, query string) ([]*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}

	var userModel models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Save(ctx context.Context, user *entity.User) error {
	userModel := ToUserModel(user)

	var err error
	if userModel.ID == "" {
		err = r.db.WithContext(ctx).Create(userModel).Error
	} else {
		err = r.db.WithContext(ctx).Save(userModel).Error
	}
	if err != nil {
		return translateError(err)
	}

	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) Search(ctx context.Context, query string) ([]*entity.User, error) {
	pattern := containsPattern(query)

	var userModels []models.User
	err := r.db.WithContext(ctx).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("created_at ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// containsPattern matches query literally anywhere in a column. Case is left
// as is; ILIKE folds both sides under the database collation.
func containsPattern(query string) string {
	return "%" + escapeLike(query) + "%"
}
