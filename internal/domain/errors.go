package domain

import "errors"

var (
	// ErrSourceUnavailable covers a missing or malformed raw review source.
	ErrSourceUnavailable = errors.New("review source unavailable")

	// ErrInvalidArgument marks a client fault (bad request body or criteria).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence covers a failed approval-store write.
	ErrPersistence = errors.New("persistence failure")

	ErrNotFound = errors.New("not found")
)
