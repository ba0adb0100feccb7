package flow_test

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chorewheel/flow"
)

// randomCosts draws a slots×chores cost matrix in [0, 50).
func randomCosts(rng *rand.Rand, slots, chores int) [][]int64 {
	costs := make([][]int64, slots)
	for i := range costs {
		costs[i] = make([]int64, chores)
		for j := range costs[i] {
			costs[i][j] = int64(rng.IntN(50))
		}
	}

	return costs
}

// bipartite wires source→slot→chore→sink with unit capacities and the given
// slot→chore costs. len(costs) slots; len(costs[0]) chores.
func bipartite(t require.TestingT, costs [][]int64) *flow.Graph {
	g := flow.NewGraph()
	src, err := g.AddNode(flow.RoleSource, "source")
	require.NoError(t, err)
	snk, err := g.AddNode(flow.RoleSink, "sink")
	require.NoError(t, err)

	chores := 0
	if len(costs) > 0 {
		chores = len(costs[0])
	}
	slotIDs := make([]flow.NodeID, len(costs))
	for i := range costs {
		slotIDs[i], err = g.AddNode(flow.RoleSlot, fmt.Sprintf("slot%d", i))
		require.NoError(t, err)
		_, err = g.AddEdge(src, slotIDs[i], 1, 0)
		require.NoError(t, err)
	}
	choreIDs := make([]flow.NodeID, chores)
	for j := 0; j < chores; j++ {
		choreIDs[j], err = g.AddNode(flow.RoleChore, fmt.Sprintf("chore%d", j))
		require.NoError(t, err)
		_, err = g.AddEdge(choreIDs[j], snk, 1, 0)
		require.NoError(t, err)
	}
	for i := range costs {
		for j := range costs[i] {
			_, err = g.AddEdge(slotIDs[i], choreIDs[j], 1, costs[i][j])
			require.NoError(t, err)
		}
	}

	return g
}

// randomBipartite is bipartite over a fresh random cost matrix.
// Either side may be empty.
func randomBipartite(t require.TestingT, rng *rand.Rand, slots, chores int) *flow.Graph {
	return bipartite(t, randomCosts(rng, slots, chores))
}

// bruteForce returns the cheapest matching of size min(slots, chores)
// by trying every injective choice.
func bruteForce(costs [][]int64) int64 {
	slots := len(costs)
	if slots == 0 {
		return 0
	}
	chores := len(costs[0])
	want := min(slots, chores)
	used := make([]bool, chores)
	best := int64(math.MaxInt64)

	var rec func(i, matched int, acc int64)
	rec = func(i, matched int, acc int64) {
		if matched+(slots-i) < want {
			return
		}
		if i == slots {
			if matched == want && acc < best {
				best = acc
			}
			return
		}
		rec(i+1, matched, acc) // slot i idle
		for j := 0; j < chores; j++ {
			if used[j] {
				continue
			}
			used[j] = true
			rec(i+1, matched+1, acc+costs[i][j])
			used[j] = false
		}
	}
	rec(0, 0, 0)

	return best
}
