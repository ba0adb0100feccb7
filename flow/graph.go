// SPDX-License-Identifier: MIT

package flow

import "fmt"

// Graph is an append-only flow network. Nodes and edges live in slices and
// are addressed by their index. A Graph is not safe for concurrent mutation;
// once built it may be read (and solved) from any number of goroutines.
type Graph struct {
	nodes  []Node
	edges  []Edge
	source NodeID
	sink   NodeID
}

// NewGraph returns an empty Graph with no source and no sink.
// Complexity: O(1).
func NewGraph() *Graph {
	return &Graph{source: NoNode, sink: NoNode}
}

// AddNode appends a node and returns its ID.
// At most one RoleSource and one RoleSink node may exist.
// Complexity: O(1) amortised.
func (g *Graph) AddNode(role Role, label string) (NodeID, error) {
	if !role.valid() {
		return NoNode, fmt.Errorf("%w: %d", ErrBadRole, uint8(role))
	}
	if (role == RoleSource && g.source != NoNode) || (role == RoleSink && g.sink != NoNode) {
		return NoNode, fmt.Errorf("%w: %s", ErrDuplicateTerminal, role)
	}

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Role: role, Label: label})
	switch role {
	case RoleSource:
		g.source = id
	case RoleSink:
		g.sink = id
	}

	return id, nil
}

// AddEdge appends a directed edge from→to and returns its ID.
//
// Errors:
//   - ErrNodeNotFound if either endpoint is not in the arena (dangling edge).
//   - ErrLoopNotAllowed if from == to.
//   - EdgeError if capacity < 0.
//
// Complexity: O(1) amortised.
func (g *Graph) AddEdge(from, to NodeID, capacity, cost int64) (EdgeID, error) {
	if !g.hasNode(from) {
		return -1, fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	if !g.hasNode(to) {
		return -1, fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}
	if from == to {
		return -1, fmt.Errorf("%w: %d", ErrLoopNotAllowed, from)
	}
	if capacity < 0 {
		return -1, EdgeError{From: from, To: to, Cap: capacity}
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{ID: id, From: from, To: to, Cap: capacity, Cost: cost})

	return id, nil
}

func (g *Graph) hasNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.hasNode(id) {
		return Node{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	return g.nodes[id], nil
}

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id EdgeID) (Edge, error) {
	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}

	return g.edges[id], nil
}

// Nodes returns a copy of all nodes in ID order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)

	return out
}

// Edges returns a copy of all edges in ID order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Source returns the source node ID, if any.
func (g *Graph) Source() (NodeID, bool) { return g.source, g.source != NoNode }

// Sink returns the sink node ID, if any.
func (g *Graph) Sink() (NodeID, bool) { return g.sink, g.sink != NoNode }

// Validate reports whether the graph can be handed to a solver: it must
// have both terminals and every edge endpoint must be inside the arena.
// AddEdge already enforces the latter; Validate re-checks it so that a
// Graph assembled by other means still fails fast.
func (g *Graph) Validate() error {
	if g == nil {
		return ErrNilGraph
	}
	if g.source == NoNode {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, ErrSourceNotFound)
	}
	if g.sink == NoNode {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, ErrSinkNotFound)
	}
	for _, e := range g.edges {
		if !g.hasNode(e.From) || !g.hasNode(e.To) {
			return fmt.Errorf("%w: edge %d has dangling endpoint: %w", ErrInvalidGraph, e.ID, ErrNodeNotFound)
		}
	}

	return nil
}
