package persistent

import (
	"errors"
	"fmt"

	"blog-api/services/blog/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// translateError maps unique violations reported by the driver to entity.ErrConflict.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", entity.ErrConflict, err)
	}
	return err
}

// validID reports whether id can exist in a uuid column. Lookups by anything
// else resolve to "absent" instead of a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
