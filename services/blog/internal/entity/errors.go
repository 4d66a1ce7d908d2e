package entity

import "errors"

// Domain errors. Messages are stable and returned to API callers verbatim.
var (
	ErrUserNotFound      = errors.New("unknown user")
	ErrPostNotFound      = errors.New("unknown post")
	ErrSelfLike          = errors.New("cannot like own post")
	ErrUserNotConfirmed  = errors.New("user status has to be confirmed in order to like post")
	ErrUserStatusRemoved = errors.New("User has been removed")
)

// ErrConflict is returned by repositories when a write violates a uniqueness
// constraint. It never originates in the like engine.
var ErrConflict = errors.New("data integrity violation")
