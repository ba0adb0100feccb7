// SPDX-License-Identifier: MIT

package household

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sentinel errors for snapshot validation and decoding.
var (
	// ErrEmptyID indicates a household, user or chore without an identifier.
	ErrEmptyID = errors.New("household: empty identifier")

	// ErrDuplicateUser indicates two users with the same ID in one household.
	ErrDuplicateUser = errors.New("household: duplicate user ID")

	// ErrDuplicateChore indicates two chores with the same ID in one household.
	ErrDuplicateChore = errors.New("household: duplicate chore ID")

	// ErrUnknownPreference indicates a preference value outside {favor, neutral, avoid}.
	ErrUnknownPreference = errors.New("household: unknown preference")
)

// Preference is how much a user wants a particular chore.
// The zero value is not a valid preference.
type Preference uint8

const (
	// Favor marks a chore the user likes doing.
	Favor Preference = iota + 1

	// Neutral marks a chore the user has no strong feeling about.
	Neutral

	// Avoid marks a chore the user would rather not do.
	Avoid
)

// String returns the canonical text form, or "Preference(n)" for invalid values.
func (p Preference) String() string {
	switch p {
	case Favor:
		return "favor"
	case Neutral:
		return "neutral"
	case Avoid:
		return "avoid"
	default:
		return fmt.Sprintf("Preference(%d)", uint8(p))
	}
}

// Valid reports whether p is one of Favor, Neutral or Avoid.
func (p Preference) Valid() bool {
	return p >= Favor && p <= Avoid
}

// ParsePreference converts a text form into a Preference.
// Matching is case-insensitive and ignores surrounding whitespace;
// "love" is accepted as an alias of "favor".
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "favor", "love":
		return Favor, nil
	case "neutral":
		return Neutral, nil
	case "avoid":
		return Avoid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreference, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Preference) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPreference, uint8(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(text []byte) error {
	v, err := ParsePreference(string(text))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// User is a household member as seen by the engine.
type User struct {
	// ID is unique within the household and is the slot-ordering key.
	ID string `json:"id" yaml:"id"`

	// Name is for display only.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Preferences maps chore ID to preference. A missing entry means the
	// user never stated one and the chore is priced as unassignable for them.
	Preferences map[string]Preference `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// Preference returns the user's stated preference for choreID.
func (u User) Preference(choreID string) (Preference, bool) {
	p, ok := u.Preferences[choreID]
	if !ok || !p.Valid() {
		return 0, false
	}

	return p, true
}

// Chore is a unit of household work.
type Chore struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// AssignedTo is the current assignee's user ID, used as "who did it last".
	AssignedTo string `json:"assignedTo,omitempty" yaml:"assignedTo,omitempty"`

	// DueAt is owned by the persistence layer; the engine ignores it.
	DueAt *time.Time `json:"dueAt,omitempty" yaml:"dueAt,omitempty"`
}

// Household is the snapshot handed to the assignment engine.
type Household struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Users  []User  `json:"users" yaml:"users"`
	Chores []Chore `json:"chores" yaml:"chores"`
}

// Validate checks identifier invariants: every user and chore has a
// non-empty ID, and IDs are unique within their kind.
// The household ID itself may be empty for ad-hoc snapshots.
//
// Complexity: O(U + C).
func (h Household) Validate() error {
	users := make(map[string]struct{}, len(h.Users))
	for i, u := range h.Users {
		if u.ID == "" {
			return fmt.Errorf("%w: user at index %d", ErrEmptyID, i)
		}
		if _, dup := users[u.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateUser, u.ID)
		}
		users[u.ID] = struct{}{}
	}

	chores := make(map[string]struct{}, len(h.Chores))
	for i, c := range h.Chores {
		if c.ID == "" {
			return fmt.Errorf("%w: chore at index %d", ErrEmptyID, i)
		}
		if _, dup := chores[c.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateChore, c.ID)
		}
		chores[c.ID] = struct{}{}
	}

	return nil
}

// SortedUsers returns a copy of the users ordered by ID.
// The household's own slice is left untouched.
func (h Household) SortedUsers() []User {
	out := make([]User, len(h.Users))
	copy(out, h.Users)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// User looks a member up by ID.
func (h Household) User(id string) (User, bool) {
	for _, u := range h.Users {
		if u.ID == id {
			return u, true
		}
	}

	return User{}, false
}
