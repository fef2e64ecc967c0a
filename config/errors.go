package config

import "errors"

var (
	// ErrUnknownScript is returned when the preserved script name is not recognized
	ErrUnknownScript = errors.New("unknown preserved script")
)
