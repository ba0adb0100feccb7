// SPDX-License-Identifier: MIT

package flow

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and solving.
var (
	// ErrNilGraph indicates that a nil *Graph was passed to a solver.
	ErrNilGraph = errors.New("flow: graph is nil")

	// ErrInvalidGraph indicates the graph cannot be solved at all.
	// It wraps ErrSourceNotFound or ErrSinkNotFound.
	ErrInvalidGraph = errors.New("flow: invalid graph")

	// ErrSourceNotFound indicates that no node has RoleSource.
	ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)

	// ErrSinkNotFound indicates that no node has RoleSink.
	ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)

	// ErrNodeNotFound indicates a NodeID outside the graph's arena.
	ErrNodeNotFound = errors.New("flow: node not found")

	// ErrEdgeNotFound indicates an EdgeID outside the graph's arena.
	ErrEdgeNotFound = errors.New("flow: edge not found")

	// ErrDuplicateTerminal indicates a second source or sink node.
	ErrDuplicateTerminal = errors.New("flow: duplicate source or sink")

	// ErrBadRole indicates an unknown Role value.
	ErrBadRole = errors.New("flow: unknown node role")

	// ErrLoopNotAllowed indicates an edge whose endpoints coincide.
	ErrLoopNotAllowed = errors.New("flow: self-loop not allowed")

	// ErrNegativeCycle indicates a negative-cost cycle in the residual graph.
	ErrNegativeCycle = errors.New("flow: negative cycle in residual graph")

	// ErrAugmentationLimit indicates WithMaxAugmentations stopped the solver.
	ErrAugmentationLimit = errors.New("flow: augmentation limit reached")
)

var (
	errSourceNotFound = errors.New("source node not found")
	errSinkNotFound   = errors.New("sink node not found")
)

// EdgeError is returned when an edge has a negative capacity.
type EdgeError struct {
	From, To NodeID
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on edge %d→%d: %d", e.From, e.To, e.Cap)
}

// NodeID indexes a node inside one Graph.
type NodeID int

// EdgeID indexes an original edge inside one Graph.
type EdgeID int

// NoNode is returned where a node is absent.
const NoNode NodeID = -1

// Role tags what a node stands for.
type Role uint8

const (
	RoleSource Role = iota + 1
	RoleSink
	RoleSlot
	RoleChore
)

// String returns a short lowercase name for the role.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleSink:
		return "sink"
	case RoleSlot:
		return "slot"
	case RoleChore:
		return "chore"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

func (r Role) valid() bool { return r >= RoleSource && r <= RoleChore }

// Node is one vertex of the network.
type Node struct {
	ID    NodeID
	Role  Role
	Label string // free-form, for logs and tests
}

// Edge is one directed, capacitated, priced arc of the network.
type Edge struct {
	ID       EdgeID
	From, To NodeID
	Cap      int64
	Cost     int64
}

// Augmentation describes one augmenting path pushed by MinCostMaxFlow.
type Augmentation struct {
	Path       []NodeID // source … sink
	Bottleneck int64
	PathCost   int64 // cost per unit along Path
}

// Result is what MinCostMaxFlow returns.
type Result struct {
	Flow          int64
	Cost          int64
	Augmentations int
	Residual      *Residual
}
