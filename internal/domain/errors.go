package domain

import "errors"

// Translation provider error types

var (
	// ErrProviderUnavailable indicates a translation provider could not be reached
	ErrProviderUnavailable = errors.New("translation provider unavailable")

	// ErrProviderResponse indicates a provider returned a malformed or empty response
	ErrProviderResponse = errors.New("malformed provider response")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSessionNotFound indicates the referenced broadcast session does not exist
	ErrSessionNotFound = errors.New("session not found")
)
