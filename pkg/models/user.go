package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountStatus string

const (
	AccountStatusNew       AccountStatus = "NEW"
	AccountStatusConfirmed AccountStatus = "CONFIRMED"
	AccountStatusRemoved   AccountStatus = "REMOVED"
)

type User struct {
	ID            string        `gorm:"type:uuid;primary_key" json:"id"`
	FirstName     string        `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string        `gorm:"type:varchar(100)" json:"last_name"`
	Email         string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	AccountStatus AccountStatus `gorm:"type:varchar(20);not null;default:'NEW'" json:"account_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
