// SPDX-License-Identifier: MIT

package flow

// Residual is the solver's working network and, after solving, the record
// of where flow went.
//
// Every original edge e owns two arcs: arc 2e is the forward arc (initial
// capacity e.Cap, cost e.Cost) and arc 2e+1 is its paired reverse arc
// (initial capacity 0, cost −e.Cost). Pushing δ along an arc subtracts δ
// from it and adds δ to its partner, so arc a and arc a^1 always sum to the
// edge's original capacity.
type Residual struct {
	g    *Graph
	from []NodeID
	to   []NodeID
	cap  []int64
	cost []int64
	out  [][]int // node → outgoing arc indices, in arc order
}

// newResidual lays out the paired arcs of g.
// Complexity: O(V + E).
func newResidual(g *Graph) *Residual {
	m := 2 * len(g.edges)
	r := &Residual{
		g:    g,
		from: make([]NodeID, m),
		to:   make([]NodeID, m),
		cap:  make([]int64, m),
		cost: make([]int64, m),
		out:  make([][]int, len(g.nodes)),
	}
	for _, e := range g.edges {
		fwd, rev := 2*int(e.ID), 2*int(e.ID)+1

		r.from[fwd], r.to[fwd], r.cap[fwd], r.cost[fwd] = e.From, e.To, e.Cap, e.Cost
		r.from[rev], r.to[rev], r.cap[rev], r.cost[rev] = e.To, e.From, 0, -e.Cost

		r.out[e.From] = append(r.out[e.From], fwd)
		r.out[e.To] = append(r.out[e.To], rev)
	}

	return r
}

// push moves delta units along arc a.
func (r *Residual) push(a int, delta int64) {
	r.cap[a] -= delta
	r.cap[a^1] += delta
}

// Graph returns the network this residual was built from.
func (r *Residual) Graph() *Graph { return r.g }

// Remaining returns the unused forward capacity of original edge e.
// Out-of-range IDs report 0.
func (r *Residual) Remaining(e EdgeID) int64 {
	if e < 0 || int(e) >= len(r.g.edges) {
		return 0
	}

	return r.cap[2*int(e)]
}

// Flow returns how many units crossed original edge e.
// Out-of-range IDs report 0.
func (r *Residual) Flow(e EdgeID) int64 {
	if e < 0 || int(e) >= len(r.g.edges) {
		return 0
	}

	return r.cap[2*int(e)+1]
}

// Saturated returns, in ID order, every original edge with positive
// capacity whose remaining capacity dropped to zero.
func (r *Residual) Saturated() []EdgeID {
	var out []EdgeID
	for _, e := range r.g.edges {
		if e.Cap > 0 && r.cap[2*int(e.ID)] == 0 {
			out = append(out, e.ID)
		}
	}

	return out
}

// Cost re-derives the total cost directly from final capacities:
// Σ over original edges of Flow(e) · e.Cost.
func (r *Residual) Cost() int64 {
	var total int64
	for _, e := range r.g.edges {
		total += r.Flow(e.ID) * e.Cost
	}

	return total
}

// Outflow returns the net flow leaving node v over original edges.
func (r *Residual) Outflow(v NodeID) int64 {
	var net int64
	for _, e := range r.g.edges {
		switch v {
		case e.From:
			net += r.Flow(e.ID)
		case e.To:
			net -= r.Flow(e.ID)
		}
	}

	return net
}
