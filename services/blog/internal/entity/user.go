package entity

import "time"

// AccountStatus gates what a user may do. Only CONFIRMED users can like posts.
type AccountStatus string

const (
	AccountStatusNew       AccountStatus = "NEW"
	AccountStatusConfirmed AccountStatus = "CONFIRMED"
	AccountStatusRemoved   AccountStatus = "REMOVED"
)

// User is a registered blog user. New users start as NEW.
type User struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	AccountStatus AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
