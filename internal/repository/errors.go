package repository

import "errors"

var (
	ErrNotFound         = errors.New("entity not found")
	ErrEmptyKey         = errors.New("snapshot key cannot be empty")
	ErrConnectionFailed = errors.New("storage connection failed")
)
