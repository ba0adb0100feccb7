// SPDX-License-Identifier: MIT

// Package flow implements an arena-style flow network and a min-cost
// max-flow solver tuned for small assignment problems.
//
// # Graph model
//
// A *Graph stores nodes and edges in slices and refers to them by integer
// index (NodeID, EdgeID). Identifiers are handed out monotonically by
// AddNode/AddEdge, are meaningful only for that Graph instance, and must
// never be persisted. Every node carries a Role:
//
//	RoleSource – the single flow origin
//	RoleSink   – the single flow destination
//	RoleSlot   – one unit of capacity owned by some external party
//	RoleChore  – one unit of demand
//
// Edges are directed and carry an integer capacity (≥ 0) and an integer
// cost. The Graph is never mutated by the solvers.
//
// # Algorithms
//
//   - MinCostMaxFlow
//
//   - Method: successive shortest augmenting paths, Bellman–Ford search over
//     the residual graph (reverse arcs carry negated cost, so a
//     non-negative-weight search would be incorrect).
//
//   - Time:   O(F · V · E) where F is the flow pushed.
//
//   - Memory: O(V + E).
//
//   - WithStrategy(Dijkstra) keeps the first Bellman–Ford pass, turns its
//     distances into node potentials and then searches reduced costs
//     (Johnson reweighting) with a binary heap: O(V·E + F · (V+E) log V).
//
//   - MaxFlow
//
//   - Method: Edmonds–Karp, BFS for fewest-edge augmenting paths; costs ignored.
//
//   - Time:   O(V · E²).
//
//   - Memory: O(V + E).
//
// Both return a *Residual that exposes remaining capacity and pushed flow per
// original edge. For MinCostMaxFlow, Residual.Cost() re-derives the total
// cost from the final capacities and always equals Result.Cost.
//
// # Errors
//
//	ErrNilGraph          - a nil *Graph was passed.
//	ErrInvalidGraph      - the graph lacks a source or sink (wraps the two below).
//	ErrSourceNotFound    - no node has RoleSource.
//	ErrSinkNotFound      - no node has RoleSink.
//	ErrNodeNotFound      - an edge endpoint or lookup is out of range.
//	ErrEdgeNotFound      - an edge lookup is out of range.
//	ErrDuplicateTerminal - a second source or sink was added.
//	ErrLoopNotAllowed    - an edge from a node to itself.
//	ErrNegativeCycle     - the residual graph has a negative cycle.
//	ErrAugmentationLimit - WithMaxAugmentations was reached.
//	EdgeError            - an edge with negative capacity.
//
// Each call allocates its own residual state, so independent graphs may be
// solved in parallel.
package flow
