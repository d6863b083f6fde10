package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidInput       = errors.New("Invalid name, email or password")
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrUnauthenticated    = errors.New("Could not validate credentials")
)
