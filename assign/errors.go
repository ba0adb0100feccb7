// SPDX-License-Identifier: MIT

package assign

import "errors"

// Sentinel errors returned by Build, Extract and Engine.Assign.
var (
	// ErrInvalidInput indicates a snapshot that cannot be turned into a round,
	// most commonly chores with nobody to do them.
	ErrInvalidInput = errors.New("assign: invalid input")

	// ErrNoUsers is wrapped by ErrInvalidInput when chores exist but users do not.
	ErrNoUsers = errors.New("assign: household has chores but no users")

	// ErrMalformedGraph indicates a builder or extractor invariant was broken.
	// It is a programming error and is never retried.
	ErrMalformedGraph = errors.New("assign: malformed graph")
)
