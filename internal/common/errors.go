// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Configuration errors. These are fatal before any file is touched.
	ErrInvalidRule = errors.New("invalid rule")

	// Per-file processing errors. These are converted to outcomes and
	// never terminate a run.
	ErrNoText      = errors.New("no text extracted")
	ErrNoSignature = errors.New("no signature matched")
	ErrNoDate      = errors.New("no date captured")
	ErrBadDate     = errors.New("could not parse date")
	ErrCollision   = errors.New("destination already exists")
)
