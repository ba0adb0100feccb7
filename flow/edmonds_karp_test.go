package flow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/chorewheel/flow"
)

// EdmondsKarpSuite groups tests for MaxFlow.
type EdmondsKarpSuite struct {
	suite.Suite
}

// TestSimplePath: s→t (cap=5) => maxFlow = 5.
func (s *EdmondsKarpSuite) TestSimplePath() {
	g := flow.NewGraph()
	src, _ := g.AddNode(flow.RoleSource, "s")
	snk, _ := g.AddNode(flow.RoleSink, "t")
	e, _ := g.AddEdge(src, snk, 5, 9)

	mf, res, err := flow.MaxFlow(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(5), mf, "max flow should match single-edge capacity")
	require.Zero(s.T(), res.Remaining(e), "forward exhausted")
	require.Equal(s.T(), int64(5), res.Flow(e), "reverse arc carries flow")
	require.Equal(s.T(), []flow.EdgeID{e}, res.Saturated())
}

// TestMultiPath: two routes => flow sums them.
func (s *EdmondsKarpSuite) TestMultiPath() {
	g := flow.NewGraph()
	src, _ := g.AddNode(flow.RoleSource, "s")
	mid, _ := g.AddNode(flow.RoleSlot, "c")
	snk, _ := g.AddNode(flow.RoleSink, "t")
	_, _ = g.AddEdge(src, snk, 3, 0)
	_, _ = g.AddEdge(src, mid, 4, 0)
	_, _ = g.AddEdge(mid, snk, 2, 0)

	mf, _, err := flow.MaxFlow(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(5), mf, "flow should combine both paths (3 + 2)")
}

// TestCanonical: costs are ignored but the value matches MinCostMaxFlow.
func (s *EdmondsKarpSuite) TestCanonical() {
	g, _ := canonical(s.T())
	mf, _, err := flow.MaxFlow(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(2), mf)
}

// TestSourceSinkNotFound covers missing terminals.
func (s *EdmondsKarpSuite) TestSourceSinkNotFound() {
	g := flow.NewGraph()
	_, _ = g.AddNode(flow.RoleSlot, "a")

	_, _, err := flow.MaxFlow(g)
	require.True(s.T(), errors.Is(err, flow.ErrSourceNotFound))

	_, _ = g.AddNode(flow.RoleSource, "s")
	_, _, err = flow.MaxFlow(g)
	require.True(s.T(), errors.Is(err, flow.ErrSinkNotFound))

	_, _, err = flow.MaxFlow(nil)
	require.True(s.T(), errors.Is(err, flow.ErrNilGraph))
}

func TestEdmondsKarpSuite(t *testing.T) {
	suite.Run(t, new(EdmondsKarpSuite))
}
