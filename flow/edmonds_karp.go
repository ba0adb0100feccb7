// SPDX-License-Identifier: MIT

package flow

import (
	"math"
)

// MaxFlow computes the maximum flow from the graph's source to its sink
// using the Edmonds–Karp algorithm (BFS for shortest augmenting paths).
// Edge costs are ignored.
//
// It is the cost-blind counterpart of MinCostMaxFlow: on the same graph both
// must report the same flow value, which makes it a cheap cross-check.
//
// It returns:
//   - maxFlow:  total flow value
//   - residual: residual network after the flow
//   - err:      ErrNilGraph or ErrInvalidGraph on malformed input
//
// Complexity: O(V · E²)
// Memory:     O(V + E)
func MaxFlow(g *Graph) (maxFlow int64, residual *Residual, err error) {
	// 1) Validate presence of source/sink
	if g == nil {
		return 0, nil, ErrNilGraph
	}
	if err = g.Validate(); err != nil {
		return 0, nil, err
	}

	// 2) Lay out paired arcs
	residual = newResidual(g)

	// 3) Main loop: find BFS augmenting paths until none remain
	for {
		prev, bottle := bfsAugmentingPath(residual, g.source, g.sink)
		if bottle <= 0 {
			break
		}
		maxFlow += bottle

		// 4) Augment along the path
		for v := g.sink; v != g.source; v = residual.from[prev[v]] {
			residual.push(prev[v], bottle)
		}
	}

	return maxFlow, residual, nil
}

// bfsAugmentingPath finds the fewest-arc path source→sink with positive
// spare capacity. It returns the predecessor arc per node and the path's
// bottleneck, or a zero bottleneck if the sink is unreachable.
func bfsAugmentingPath(r *Residual, source, sink NodeID) ([]int, int64) {
	// prev[v] = arc that reached v
	prev := make([]int, len(r.out))
	for i := range prev {
		prev[i] = -1
	}
	// capTo[v] = bottleneck from source→v
	capTo := make([]int64, len(r.out))
	capTo[source] = math.MaxInt64
	visited := make([]bool, len(r.out))
	visited[source] = true

	queue := []NodeID{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, a := range r.out[u] {
			v := r.to[a]
			if visited[v] || r.cap[a] <= 0 {
				continue
			}
			visited[v] = true
			prev[v] = a
			capTo[v] = min(capTo[u], r.cap[a])
			if v == sink {
				return prev, capTo[sink]
			}
			queue = append(queue, v)
		}
	}

	return prev, 0
}
