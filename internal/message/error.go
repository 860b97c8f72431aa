package message

import "errors"

var (
	ErrMissingFields   = errors.New("name, phone and content are required")
	ErrMessageNotFound = errors.New("message not found")
)
