// SPDX-License-Identifier: MIT

// Package household defines the point-in-time snapshot the assignment engine
// works on: a Household with its Users, Chores and per-user chore Preferences.
//
// A snapshot is plain data. It is resolved from storage by the caller, handed
// to the engine by value and never mutated by it.
//
// Preferences use a single tagged enum:
//
//	favor   – the user likes doing the chore
//	neutral – no strong feeling either way
//	avoid   – the user would rather not
//
// The text form is "favor" | "neutral" | "avoid". The spelling "love" is
// accepted on input as an alias of favor, so older records still decode.
//
// Repeat avoidance relies on Chore.AssignedTo: whoever holds the chore now is
// taken to be whoever did it last.
//
// Errors:
//
//	ErrEmptyID            - a household, user or chore has an empty ID.
//	ErrDuplicateUser      - two users share an ID.
//	ErrDuplicateChore     - two chores share an ID.
//	ErrUnknownPreference  - a preference string is not recognised.
package household
