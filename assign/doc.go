// SPDX-License-Identifier: MIT

// Package assign turns a household snapshot into a chore assignment for one
// round.
//
// The pipeline is:
//
//	household.Household ─Build→ *Network ─flow.MinCostMaxFlow→ *flow.Residual
//	                     ─Extract→ []Pair ─Engine→ *Result ([]Assignment)
//
// Build creates a source and a sink, gives every user floor(C/U) "slots"
// (one unit of chore-taking capacity each) and hands one extra slot to each
// of the first C mod U users in ID order, so the same household always
// yields the same distribution. Every slot is linked to every chore at the
// price computed by a cost.Model; every chore drains into the sink.
//
// Extract reads the solved network back: each saturated slot→chore edge is
// one assignment. The Network remembers which user owns each slot, which is
// how the Engine maps pairs back to user IDs.
//
// Failure modes:
//
//	ErrInvalidInput   – the snapshot cannot be priced (no users but chores,
//	                    duplicate IDs, nil cost model).
//	ErrMalformedGraph – the built network violated a builder invariant or the
//	                    extracted pairs were not a partial bijection.
//
// A chore nobody has a preference for is still assigned, at the sentinel
// price, and the resulting Assignment is flagged LowConfidence.
//
// Engine is safe for concurrent use: each Assign call builds its own cost
// model, network and residual state.
package assign
