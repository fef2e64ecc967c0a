package domain

import "errors"

var (
	// ErrInvalidEmailFormat is returned when the email format is not valid
	ErrInvalidEmailFormat = errors.New("invalid email format")
	// ErrInvalidDomainFormat is returned when the domain fails the shape check
	ErrInvalidDomainFormat = errors.New("invalid domain format")
)
