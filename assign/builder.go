// SPDX-License-Identifier: MIT

package assign

import (
	"fmt"

	"github.com/katalvlaran/chorewheel/cost"
	"github.com/katalvlaran/chorewheel/flow"
	"github.com/katalvlaran/chorewheel/household"
)

// Slot is one unit of chore-taking capacity owned by one user.
type Slot struct {
	Node   flow.NodeID
	UserID string
	Index  int // 0-based position among this user's slots
}

// Network is a built flow graph plus the associations the graph itself
// forgets: which user owns each slot node and which chore each chore node
// stands for.
type Network struct {
	Graph  *flow.Graph
	Source flow.NodeID
	Sink   flow.NodeID

	// Slots lists every slot in creation order (users by ID, then index).
	Slots []Slot

	slotAt   map[flow.NodeID]Slot
	choreAt  map[flow.NodeID]string
	sentinel map[flow.EdgeID]bool
}

// SlotOwner returns the user owning slot node id.
func (n *Network) SlotOwner(id flow.NodeID) (string, bool) {
	s, ok := n.slotAt[id]

	return s.UserID, ok
}

// ChoreAt returns the chore ID behind chore node id.
func (n *Network) ChoreAt(id flow.NodeID) (string, bool) {
	c, ok := n.choreAt[id]

	return c, ok
}

// Unassignable reports whether slot→chore edge e was priced at the
// sentinel because the slot's owner had no preference for the chore.
func (n *Network) Unassignable(e flow.EdgeID) bool {
	return n.sentinel[e]
}

// SlotCounts returns how many slots each user received.
func (n *Network) SlotCounts() map[string]int {
	out := make(map[string]int)
	for _, s := range n.Slots {
		out[s.UserID]++
	}

	return out
}

// Build turns a household snapshot into a flow network priced by m.
//
// Steps:
//  1. Validate the snapshot and reject chores without users.
//  2. Create the source and the sink.
//  3. Sort users by ID; base = C / U, the first C mod U users get one more.
//  4. For every slot: source→slot (cap 1, cost 0).
//  5. For every chore: chore→sink (cap 1, cost 0).
//  6. For every (slot, chore): slot→chore (cap 1, cost m(user, chore)).
//
// A household with users but no chores yields a network with no chore
// nodes (and no slots); one with neither yields just the two terminals.
//
// Complexity: O(S · C) edges and cost evaluations, S = C when U > 0.
func Build(h household.Household, m *cost.Model) (*Network, error) {
	// 1) Input checks
	if m == nil {
		return nil, fmt.Errorf("%w: nil cost model", ErrInvalidInput)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	numUsers, numChores := len(h.Users), len(h.Chores)
	if numUsers == 0 && numChores > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrNoUsers)
	}

	// 2) Terminals
	g := flow.NewGraph()
	n := &Network{
		Graph:    g,
		slotAt:   make(map[flow.NodeID]Slot),
		choreAt:  make(map[flow.NodeID]string, numChores),
		sentinel: make(map[flow.EdgeID]bool),
	}
	var err error
	if n.Source, err = g.AddNode(flow.RoleSource, "source"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
	}
	if n.Sink, err = g.AddNode(flow.RoleSink, "sink"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
	}
	if numUsers == 0 {
		return n, nil
	}

	// 3) + 4) Slots, users in ID order
	users := h.SortedUsers()
	base, extra := numChores/numUsers, numChores%numUsers
	owners := make([]household.User, 0, numChores)
	for i, u := range users {
		count := base
		if i < extra {
			count++
		}
		for k := 0; k < count; k++ {
			id, err := g.AddNode(flow.RoleSlot, fmt.Sprintf("%s#%d", u.ID, k))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
			}
			if _, err = g.AddEdge(n.Source, id, 1, 0); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
			}
			s := Slot{Node: id, UserID: u.ID, Index: k}
			n.Slots = append(n.Slots, s)
			n.slotAt[id] = s
			owners = append(owners, u)
		}
	}

	// 5) Chores, in snapshot order
	choreNodes := make([]flow.NodeID, numChores)
	for j, c := range h.Chores {
		id, err := g.AddNode(flow.RoleChore, c.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
		}
		if _, err = g.AddEdge(id, n.Sink, 1, 0); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
		}
		choreNodes[j] = id
		n.choreAt[id] = c.ID
	}

	// 6) Complete bipartite slot→chore layer
	for i, s := range n.Slots {
		for j, c := range h.Chores {
			price := m.Breakdown(owners[i], c)
			e, err := g.AddEdge(s.Node, choreNodes[j], 1, price.Total())
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
			}
			if price.Unassignable {
				n.sentinel[e] = true
			}
		}
	}

	return n, nil
}
