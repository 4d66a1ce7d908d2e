package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	Entry     string    `gorm:"type:text;not null" json:"entry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
