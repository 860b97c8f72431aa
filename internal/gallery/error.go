package gallery

import "errors"

var (
	ErrMissingImage  = errors.New("image file is required")
	ErrImageNotFound = errors.New("gallery image not found")
)
