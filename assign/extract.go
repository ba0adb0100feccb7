// SPDX-License-Identifier: MIT

package assign

import (
	"fmt"

	"github.com/katalvlaran/chorewheel/flow"
)

// Pair is one saturated slot→chore edge.
type Pair struct {
	Slot  flow.NodeID
	Chore flow.NodeID
	Edge  flow.EdgeID
	Cost  int64
}

// Extract scans every original edge of n in ID order and collects the
// slot→chore edges whose remaining capacity in r dropped to zero.
func Extract(n *Network, r *flow.Residual) []Pair {
	var pairs []Pair
	for _, e := range n.Graph.Edges() {
		if e.Cap <= 0 || r.Remaining(e.ID) != 0 {
			continue
		}
		if _, ok := n.slotAt[e.From]; !ok {
			continue
		}
		if _, ok := n.choreAt[e.To]; !ok {
			continue
		}
		pairs = append(pairs, Pair{Slot: e.From, Chore: e.To, Edge: e.ID, Cost: e.Cost})
	}

	return pairs
}

// checkPairs verifies the extractor guarantee: no slot and no chore
// appears twice, and there is exactly one pair per unit of flow.
func checkPairs(pairs []Pair, flowValue int64) error {
	if int64(len(pairs)) != flowValue {
		return fmt.Errorf("%w: %d pairs for flow %d", ErrMalformedGraph, len(pairs), flowValue)
	}
	slots := make(map[flow.NodeID]struct{}, len(pairs))
	chores := make(map[flow.NodeID]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := slots[p.Slot]; dup {
			return fmt.Errorf("%w: slot %d assigned twice", ErrMalformedGraph, p.Slot)
		}
		if _, dup := chores[p.Chore]; dup {
			return fmt.Errorf("%w: chore %d assigned twice", ErrMalformedGraph, p.Chore)
		}
		slots[p.Slot] = struct{}{}
		chores[p.Chore] = struct{}{}
	}

	return nil
}
