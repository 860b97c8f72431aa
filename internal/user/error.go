package user

import "errors"

var (
	ErrInvalidPhone       = errors.New("phone must be a leading zero followed by nine digits")
	ErrWeakPassword       = errors.New("password must be at least 8 characters with a letter and a digit")
	ErrPhoneExists        = errors.New("phone already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrSamePassword       = errors.New("new password must differ from the old one")
)
