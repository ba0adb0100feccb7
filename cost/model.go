// SPDX-License-Identifier: MIT

// Package cost prices a single (user, chore) pairing for one assignment round.
//
// The price is a sum of three parts:
//
//	base   – a fixed tier keyed by the user's preference (favor ≪ neutral ≪ avoid)
//	noise  – a small random perturbation in [0, NoiseSpan] that breaks exact ties
//	repeat – RepeatPenalty when the chore is currently assigned to this same user
//
// A user with no recorded preference for the chore gets the Unassignable
// sentinel instead. It is finite, so the solver still terminates and can fall
// back to it, but it dominates every regular price.
//
// The default constants keep a ~24× spread between tiers and put the repeat
// penalty above the favor→avoid gap, so a favored chore done last round loses
// to an avoided chore nobody just did. All of them are policy, not invariants;
// callers tune them with WithPolicy.
//
// A Model is not safe for concurrent use: it owns its noise source.
// Build one Model per assignment round.
package cost

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/chorewheel/household"
)

// Default policy constants.
const (
	DefaultFavor         int64 = 1
	DefaultNeutral       int64 = 25
	DefaultAvoid         int64 = 600
	DefaultRepeatPenalty int64 = 1000
	DefaultNoiseSpan           = 3
	DefaultUnassignable  int64 = 1_000_000
)

// ErrBadPolicy is returned by Policy.Validate for inconsistent constants.
var ErrBadPolicy = errors.New("cost: invalid policy")

// Source is the randomness the Model draws tie-breaking noise from.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// zeroSource always returns 0; used by WithoutNoise.
type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }

// Policy holds the tunable pricing constants.
type Policy struct {
	Favor         int64 `json:"favor" yaml:"favor"`
	Neutral       int64 `json:"neutral" yaml:"neutral"`
	Avoid         int64 `json:"avoid" yaml:"avoid"`
	RepeatPenalty int64 `json:"repeatPenalty" yaml:"repeatPenalty"`
	NoiseSpan     int   `json:"noiseSpan" yaml:"noiseSpan"`
	Unassignable  int64 `json:"unassignable" yaml:"unassignable"`
}

// DefaultPolicy returns the production constants.
func DefaultPolicy() Policy {
	return Policy{
		Favor:         DefaultFavor,
		Neutral:       DefaultNeutral,
		Avoid:         DefaultAvoid,
		RepeatPenalty: DefaultRepeatPenalty,
		NoiseSpan:     DefaultNoiseSpan,
		Unassignable:  DefaultUnassignable,
	}
}

// Validate checks that tiers are non-negative and strictly ordered, that
// the penalty and noise span are non-negative, and that the sentinel
// exceeds the most expensive regular price.
func (p Policy) Validate() error {
	switch {
	case p.Favor < 0:
		return fmt.Errorf("%w: favor tier %d is negative", ErrBadPolicy, p.Favor)
	case p.Favor >= p.Neutral || p.Neutral >= p.Avoid:
		return fmt.Errorf("%w: tiers must satisfy favor < neutral < avoid (got %d, %d, %d)",
			ErrBadPolicy, p.Favor, p.Neutral, p.Avoid)
	case p.RepeatPenalty < 0:
		return fmt.Errorf("%w: repeat penalty %d is negative", ErrBadPolicy, p.RepeatPenalty)
	case p.NoiseSpan < 0:
		return fmt.Errorf("%w: noise span %d is negative", ErrBadPolicy, p.NoiseSpan)
	case p.Unassignable <= p.maxRegular():
		return fmt.Errorf("%w: unassignable %d must exceed max regular cost %d",
			ErrBadPolicy, p.Unassignable, p.maxRegular())
	}

	return nil
}

func (p Policy) maxRegular() int64 {
	return p.Avoid + p.RepeatPenalty + int64(p.NoiseSpan)
}

// tier returns the base cost for a valid preference.
func (p Policy) tier(pref household.Preference) int64 {
	switch pref {
	case household.Favor:
		return p.Favor
	case household.Neutral:
		return p.Neutral
	default:
		return p.Avoid
	}
}

// Breakdown is an itemised price.
type Breakdown struct {
	Base   int64
	Noise  int64
	Repeat int64

	// Unassignable is set when the user had no preference for the chore;
	// Base then holds the sentinel and Noise/Repeat are zero.
	Unassignable bool
}

// Total is the price the solver sees.
func (b Breakdown) Total() int64 {
	return b.Base + b.Noise + b.Repeat
}

// Model prices (user, chore) pairs under a Policy.
type Model struct {
	policy Policy
	rng    Source
}

// New builds a Model. Without options it uses DefaultPolicy and a private
// generator seeded from the runtime's concurrency-safe global source.
func New(opts ...Option) *Model {
	m := &Model{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return m
}

// Policy returns the constants in effect.
func (m *Model) Policy() Policy {
	return m.policy
}

// Cost returns the price of giving chore c to user u this round.
func (m *Model) Cost(u household.User, c household.Chore) int64 {
	return m.Breakdown(u, c).Total()
}

// Breakdown returns the itemised price of giving chore c to user u.
// Exactly one noise draw is made per regular price, none for the sentinel.
func (m *Model) Breakdown(u household.User, c household.Chore) Breakdown {
	pref, ok := u.Preference(c.ID)
	if !ok {
		return Breakdown{Base: m.policy.Unassignable, Unassignable: true}
	}

	b := Breakdown{Base: m.policy.tier(pref)}
	if m.policy.NoiseSpan > 0 {
		b.Noise = int64(m.rng.IntN(m.policy.NoiseSpan + 1))
	}
	if c.AssignedTo != "" && c.AssignedTo == u.ID {
		b.Repeat = m.policy.RepeatPenalty
	}

	return b
}
