package util

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPathNotFound       = errors.New("learning path not found")
	ErrCareerPathNotFound = errors.New("career path not found")
	ErrResourceNotFound   = errors.New("resource not found in learning path")
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrNotSubscribed      = errors.New("email is not subscribed")
)
