package storage

import "errors"

var (
	ErrEmptyToken    = errors.New("session token is empty")
	ErrEmptyUsername = errors.New("username is empty")
)
