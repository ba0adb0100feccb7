// SPDX-License-Identifier: MIT

package flow

import "container/heap"

// seedPotentials stores the Bellman–Ford distances as node potentials.
// Nodes the source cannot reach get 0; they never become reachable, since
// augmenting only adds reverse arcs between nodes that already are.
func (s *sspRunner) seedPotentials() {
	n := len(s.dist)
	s.potential = make([]int64, n)
	s.done = make([]bool, n)
	s.heap = make(nodeHeap, 0, n)
	s.updatePotentials()
}

// updatePotentials sets h[v] to the true distance of every reached node,
// which keeps every reduced cost c(u,v) + h[u] − h[v] non-negative on the
// next residual network.
func (s *sspRunner) updatePotentials() {
	for v, d := range s.dist {
		if d != unreached {
			s.potential[v] = d
		}
	}
}

// dijkstra searches reduced costs from the source with a lazy
// decrease-key heap, then converts the distances back to true costs.
// Reports whether the sink is reachable.
func (s *sspRunner) dijkstra() bool {
	r := s.res
	h := s.potential
	for v := range s.dist {
		s.dist[v] = unreached
		s.prev[v] = -1
		s.done[v] = false
	}
	s.dist[s.source] = 0
	s.heap = s.heap[:0]
	heap.Push(&s.heap, heapItem{node: s.source, dist: 0})

	for s.heap.Len() > 0 {
		item := heap.Pop(&s.heap).(heapItem)
		u := item.node
		if s.done[u] {
			continue // stale entry
		}
		s.done[u] = true

		for _, a := range r.out[u] {
			if r.cap[a] <= 0 {
				continue
			}
			v := r.to[a]
			if s.done[v] {
				continue
			}
			if nd := s.dist[u] + r.cost[a] + h[u] - h[v]; nd < s.dist[v] {
				s.dist[v] = nd
				s.prev[v] = a
				heap.Push(&s.heap, heapItem{node: v, dist: nd})
			}
		}
	}

	// Reduced → true distances: d(v) = d'(v) − h[source] + h[v], h[source] = 0.
	for v, d := range s.dist {
		if d != unreached {
			s.dist[v] = d + h[v]
		}
	}
	s.updatePotentials()

	return s.dist[s.sink] != unreached
}

// heapItem is a node and its tentative reduced distance.
type heapItem struct {
	node NodeID
	dist int64
}

// nodeHeap is a min-heap ordered by distance, then node ID.
type nodeHeap []heapItem

func (q nodeHeap) Len() int { return len(q) }

func (q nodeHeap) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}

	return q[i].node < q[j].node
}

func (q nodeHeap) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeHeap) Push(x any) { *q = append(*q, x.(heapItem)) }

func (q *nodeHeap) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}
