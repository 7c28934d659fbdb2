package feedback

import "errors"

var (
	ErrNotFound     = errors.New("Suggestion not found")
	ErrInvalidInput = errors.New("invalid input")
)
