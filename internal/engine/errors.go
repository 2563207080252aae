package engine

import "errors"

var (
	// ErrOrdinalOutOfRange signals a lookup outside 1..TotalQuestions; it is a programming defect.
	ErrOrdinalOutOfRange = errors.New("question ordinal out of range")
	ErrInvalidCatalog    = errors.New("invalid question catalog")
	ErrCorruptState      = errors.New("corrupt session state")
)
