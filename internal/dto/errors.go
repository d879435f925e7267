package dto

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateVote   = errors.New("duplicate vote")
	ErrInternalFailure = errors.New("internal failure")
)
