package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidConfidence indicates a confidence label outside low/medium/high
	ErrInvalidConfidence = errors.New("invalid confidence label")
)
