package storage

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrAdminNotFound = errors.New("admin not found")
	ErrCacheMiss     = errors.New("cache miss")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
