package merge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cagraph/cagra/graphstore"
	"github.com/cagraph/cagra/merge"
	"github.com/cagraph/cagra/reverse"
)

func buildGraph(t *testing.T, rows [][]int32) *graphstore.FixedDegreeGraph {
	t.Helper()
	k := int32(len(rows[0]))
	g, err := graphstore.New(int32(len(rows)), k)
	require.NoError(t, err)
	for u, row := range rows {
		copy(g.Row(int32(u)), row)
	}
	return g
}

// TestBudgetScenarioD checks spec.md Scenario D's degree-parity example
// directly: R=5 (odd), rSize=3 -> half=2, rSize is not < half, so
// rUse=2, sUse=3.
func TestBudgetScenarioD(t *testing.T) {
	sUse, rUse := merge.Budget(3, 5)
	require.Equal(t, int32(3), sUse)
	require.Equal(t, int32(2), rUse)
	require.Equal(t, int32(5), sUse+rUse)
}

// TestBudgetReservesHalfForForward checks the general rule across a
// sweep of rSize values for an even R.
func TestBudgetReservesHalfForForward(t *testing.T) {
	const r = int32(4)
	cases := []struct {
		rSize    int32
		sUse, rUse int32
	}{
		{0, 4, 0},
		{1, 3, 1},
		{2, 2, 2}, // rSize == half: falls into "otherwise" branch
		{3, 2, 2},
		{10, 2, 2},
	}
	for _, c := range cases {
		sUse, rUse := merge.Budget(c.rSize, r)
		require.Equal(t, c.sUse, sUse, "rSize=%d", c.rSize)
		require.Equal(t, c.rUse, rUse, "rSize=%d", c.rSize)
		require.Equal(t, r, sUse+rUse)
	}
}

// TestScenarioBFullSymmetry checks spec.md Scenario B: an empty reverse
// graph (every edge already present forward) makes the merged output
// identical to the reordered graph, with no -1 slots.
func TestScenarioBFullSymmetry(t *testing.T) {
	reordered := buildGraph(t, [][]int32{
		{1, 2},
		{0, 2},
		{0, 1},
	})
	info := graphstore.GraphInfo{N: 3, R: 2, RInit: 2, RKNNG: 2}

	rev, err := reverse.Run(context.Background(), reordered, info, 0)
	require.NoError(t, err)
	defer rev.Graph.Close()

	final, err := merge.Run(context.Background(), reordered, rev, info, 0)
	require.NoError(t, err)
	defer final.Close()

	for x := int32(0); x < 3; x++ {
		require.Equal(t, reordered.Row(x), final.Row(x))
		for _, id := range final.Row(x) {
			require.NotEqual(t, graphstore.EmptyID, id)
		}
	}
}

// TestScenarioCReverseOverflowMerge checks spec.md Scenario C's merge
// half: node 0 has rSize=2 stored reverse edges (capped from 3 attempts
// by nodes 2, 3 and 4; node 1's edge is deduplicated against node 0's
// forward row), R/2=1, so rUse=1, sUse=1 -- one forward neighbor and one
// reverse candidate survive into the final row.
func TestScenarioCReverseOverflowMerge(t *testing.T) {
	reordered := buildGraph(t, [][]int32{
		{1, graphstore.EmptyID},
		{0, 2},
		{0, 1},
		{0, 1},
		{0, 1},
	})
	info := graphstore.GraphInfo{N: 5, R: 2, RInit: 4, RKNNG: 4}

	rev, err := reverse.Run(context.Background(), reordered, info, 0)
	require.NoError(t, err)
	defer rev.Graph.Close()

	final, err := merge.Run(context.Background(), reordered, rev, info, 0)
	require.NoError(t, err)
	defer final.Close()

	row0 := final.Row(0)
	require.Len(t, row0, 2)
	require.Equal(t, int32(1), row0[0]) // sUse=1: the single forward neighbor
	require.Contains(t, []int32{2, 3, 4}, row0[1])
	for _, id := range row0 {
		require.NotEqual(t, graphstore.EmptyID, id)
	}
}

// TestScenarioFNoSentinelsInFinalGraph checks spec.md Scenario F: since
// sUse+rUse always equals R and both prefixes are filled from real data,
// the final graph never contains the empty-slot sentinel.
func TestScenarioFNoSentinelsInFinalGraph(t *testing.T) {
	reordered := buildGraph(t, [][]int32{
		{1, 2, 3},
		{2, 3, 4},
		{3, 4, 0},
		{4, 0, 1},
		{0, 1, 2},
	})
	info := graphstore.GraphInfo{N: 5, R: 3, RInit: 3, RKNNG: 3}

	rev, err := reverse.Run(context.Background(), reordered, info, 0)
	require.NoError(t, err)
	defer rev.Graph.Close()

	final, err := merge.Run(context.Background(), reordered, rev, info, 0)
	require.NoError(t, err)
	defer final.Close()

	for x := int32(0); x < info.N; x++ {
		for _, id := range final.Row(x) {
			require.NotEqual(t, graphstore.EmptyID, id)
		}
	}
}
