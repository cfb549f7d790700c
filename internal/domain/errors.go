package domain

import "errors"

// Caller errors (handlers map these to 400).
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrListingNotFound = errors.New("listing not found")
)

// Collaborator failures (handlers map these to 500). Each collaborator call is
// mapped individually instead of a single catch-all.
var (
	ErrStorageWrite = errors.New("record store write failed")
	ErrSearchWrite  = errors.New("search index write failed")
	ErrSearchDelete = errors.New("search index delete failed")
	ErrBlobWrite    = errors.New("blob store write failed")
	ErrBlobDelete   = errors.New("blob store delete failed")
)
