// SPDX-License-Identifier: MIT

package flow

import (
	"math"
)

const unreached = math.MaxInt64

// MinCostMaxFlow pushes the maximum flow from the graph's source to its sink
// at minimum total cost, using successive shortest augmenting paths with a
// Bellman–Ford search (or Dijkstra over reduced costs, see WithStrategy).
//
// Steps:
//  1. Validate the graph (source and sink present, no dangling edges).
//  2. Lay out the residual network: one forward and one reverse arc per edge.
//  3. Repeat:
//     a. Bellman–Ford from the source over arcs with spare capacity,
//     at most |V|−1 relaxation rounds, remembering the predecessor arc.
//     b. If the sink is unreached, stop.
//     c. Walk back from the sink to find the bottleneck; stop if it is 0.
//     d. Push the bottleneck along the path; flow += δ, cost += δ·pathCost.
//  4. Return flow, cost and the residual network.
//
// Ties between equally cheap paths are broken by arc order, which follows
// edge insertion order, so identical graphs always produce identical flows.
//
// Complexity:
//
//	Time:   O(F · V · E), F = total flow; Dijkstra: O(V·E + F · (V+E) log V).
//	Memory: O(V + E).
func MinCostMaxFlow(g *Graph, opts ...Option) (*Result, error) {
	// 1) Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Fail fast on malformed input, before any allocation.
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	s := &sspRunner{
		res:      newResidual(g),
		source:   g.source,
		sink:     g.sink,
		strategy: cfg.Strategy,
		dist:     make([]int64, len(g.nodes)),
		prev:     make([]int, len(g.nodes)),
	}

	// 3) Main loop
	out := &Result{Residual: s.res}
	for {
		found, err := s.shortestPath()
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}

		bottleneck := s.bottleneck()
		if bottleneck <= 0 {
			break // unreachable with a correct residual graph
		}
		if cfg.MaxAugmentations > 0 && out.Augmentations == cfg.MaxAugmentations {
			return nil, ErrAugmentationLimit
		}

		pathCost := s.dist[s.sink]
		s.augment(bottleneck)
		out.Flow += bottleneck
		out.Cost += bottleneck * pathCost
		out.Augmentations++

		if cfg.OnAugment != nil {
			cfg.OnAugment(Augmentation{Path: s.path(), Bottleneck: bottleneck, PathCost: pathCost})
		}
	}

	return out, nil
}

// sspRunner holds the mutable state of one MinCostMaxFlow call.
type sspRunner struct {
	res          *Residual
	source, sink NodeID
	strategy     Strategy
	dist         []int64 // best known cost from source
	prev         []int   // predecessor arc per node, -1 if none

	// Dijkstra only: node potentials, nil until the seeding pass.
	potential []int64
	heap      nodeHeap
	done      []bool
}

// shortestPath finds the cheapest augmenting path with the configured
// strategy and reports whether the sink is reachable.
func (s *sspRunner) shortestPath() (bool, error) {
	if s.strategy != Dijkstra {
		return s.bellmanFord()
	}
	if s.potential == nil {
		found, err := s.bellmanFord()
		if err != nil {
			return false, err
		}
		s.seedPotentials()

		return found, nil
	}

	return s.dijkstra(), nil
}

// bellmanFord runs Bellman–Ford from the source over arcs with spare
// capacity. An improvement still possible after |V|−1 rounds means a
// negative cycle.
func (s *sspRunner) bellmanFord() (bool, error) {
	r := s.res
	for v := range s.dist {
		s.dist[v] = unreached
		s.prev[v] = -1
	}
	s.dist[s.source] = 0

	n := len(s.dist)
	for round := 0; round < n; round++ {
		changed := false
		for a := range r.cap {
			if r.cap[a] <= 0 {
				continue
			}
			u := r.from[a]
			if s.dist[u] == unreached {
				continue
			}
			v := r.to[a]
			if nd := s.dist[u] + r.cost[a]; nd < s.dist[v] {
				if round == n-1 {
					return false, ErrNegativeCycle
				}
				s.dist[v] = nd
				s.prev[v] = a
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	return s.dist[s.sink] != unreached, nil
}

// bottleneck is the smallest spare capacity on the current path.
func (s *sspRunner) bottleneck() int64 {
	r := s.res
	b := int64(math.MaxInt64)
	for v := s.sink; v != s.source; v = r.from[s.prev[v]] {
		if c := r.cap[s.prev[v]]; c < b {
			b = c
		}
	}

	return b
}

// augment pushes delta along the current path.
func (s *sspRunner) augment(delta int64) {
	r := s.res
	for v := s.sink; v != s.source; v = r.from[s.prev[v]] {
		r.push(s.prev[v], delta)
	}
}

// path reconstructs the current path source … sink.
func (s *sspRunner) path() []NodeID {
	r := s.res
	var rev []NodeID
	for v := s.sink; v != s.source; v = r.from[s.prev[v]] {
		rev = append(rev, v)
	}
	rev = append(rev, s.source)

	out := make([]NodeID, len(rev))
	for i := range rev {
		out[i] = rev[len(rev)-1-i]
	}

	return out
}
