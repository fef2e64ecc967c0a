package analyzer

import "errors"

var (
	// ErrMissingAPIKey is returned when a model client is created without an API key
	ErrMissingAPIKey = errors.New("api key is required")

	// ErrRequestFailed is returned when the completion request could not be sent
	ErrRequestFailed = errors.New("completion request failed")

	// ErrUnexpectedStatus is returned when the completion API responds with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status from completion API")

	// ErrEmptyCompletion is returned when the completion API responds without content
	ErrEmptyCompletion = errors.New("empty completion response")

	// ErrMalformedCompletion is returned when the completion content is not the expected JSON
	ErrMalformedCompletion = errors.New("malformed completion response")
)
