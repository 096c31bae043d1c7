package navmesh

import (
	"math/rand"
	"testing"

	"github.com/gorustyt/fenav/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathTwoSquares(t *testing.T) {
	m := twoSquares(t)
	var path []PolyRef
	status := m.FindPath(common.V3(0.5, 0, 0.5), common.V3(1.5, 0, 0.5), &path)
	require.True(t, status.Succeed(), status.String())
	assert.Equal(t, []PolyRef{0, 1}, path)
}

func TestFindPathSamePolygon(t *testing.T) {
	m := twoSquares(t)
	path := []PolyRef{7, 7, 7}
	status := m.FindPath(common.V3(0.2, 0, 0.2), common.V3(0.8, 0, 0.9), &path)
	require.True(t, status.Succeed())
	assert.Equal(t, []PolyRef{0}, path)
}

func TestFindPathOffMesh(t *testing.T) {
	m := twoSquares(t)
	path := []PolyRef{1}
	status := m.FindPath(common.V3(5, 0, 5), common.V3(1.5, 0, 0.5), &path)
	assert.True(t, status.Failed())
	assert.True(t, status.Detail(NAV_NO_PATH))
	assert.Empty(t, path)

	status = m.FindPath(common.V3(0.5, 0, 0.5), common.V3(-3, 0, 0.5), &path)
	assert.True(t, status.Detail(NAV_NO_PATH))
	assert.Empty(t, path)
}

func TestFindPathDisconnectedIslands(t *testing.T) {
	m := buildGrid(t, []cell{{0, 0}, {1, 0}, {3, 0}}, false, nil).mesh
	var path []PolyRef
	status := m.FindPath(common.V3(0.5, 0, 0.5), common.V3(3.5, 0, 0.5), &path)
	assert.True(t, status.Failed())
	assert.True(t, status.Detail(NAV_NO_PATH))
	assert.Empty(t, path)
	assert.ElementsMatch(t, []PolyRef{0, 1}, m.Workspace().Closed())
}

func TestFindPathInvalidArgs(t *testing.T) {
	m := twoSquares(t)
	status := m.FindPath(common.V3(0.5, 0, 0.5), common.V3(1.5, 0, 0.5), nil)
	assert.True(t, status.Detail(NAV_INVALID_PARAM))

	var path []PolyRef
	status = m.FindPath(Vec3{nan(), 0, 0}, common.V3(1.5, 0, 0.5), &path)
	assert.True(t, status.Detail(NAV_INVALID_PARAM))

	status = m.FindPathBetween(0, 5, &path)
	assert.True(t, status.Detail(NAV_INVALID_PARAM))
}

func TestFindPathRequiresConnections(t *testing.T) {
	m := twoSquares(t)
	m.AddVertex(common.V3(9, 0, 9))
	_, status := m.AddPolygon(Poly{Verts: []int32{4, 6, 5}})
	require.True(t, status.Succeed())
	require.False(t, m.IsConnected())

	var path []PolyRef
	status = m.FindPath(common.V3(0.5, 0, 0.5), common.V3(1.5, 0, 0.5), &path)
	assert.True(t, status.Failed())
	assert.True(t, status.Detail(NAV_NOT_CONNECTED))

	m.BuildConnections()
	status = m.FindPath(common.V3(0.5, 0, 0.5), common.V3(1.5, 0, 0.5), &path)
	assert.True(t, status.Succeed())
	assert.Equal(t, 3, m.Workspace().Len())
}

func TestFindPathOptimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		tm := buildGrid(t, randomCells(rng, 5, 4, 0.2), true, rng)
		m := tm.mesh
		costs := shortestCosts(m)
		var path []PolyRef
		for q := 0; q < 15; q++ {
			a := PolyRef(rng.Intn(m.PolyCount()))
			b := PolyRef(rng.Intn(m.PolyCount()))
			status := m.FindPath(interiorPoint(m, a, rng), interiorPoint(m, b, rng), &path)
			if costs[a][b] > 1e9 {
				assert.True(t, status.Detail(NAV_NO_PATH))
				continue
			}
			require.True(t, status.Succeed(), "round %d %d->%d: %v", round, a, b, status)
			require.Equal(t, a, path[0])
			require.Equal(t, b, path[len(path)-1])
			for i := 1; i < len(path); i++ {
				_, ok := m.Poly(path[i-1]).Neighbor(path[i])
				require.True(t, ok, "corridor step %d->%d is not adjacent", path[i-1], path[i])
			}
			assert.InDelta(t, costs[a][b], m.PathCost(path), 1e-3, "round %d %d->%d", round, a, b)
		}
	}
}

func TestWorkspaceReusedAcrossSearches(t *testing.T) {
	m := buildGrid(t, randomCells(rand.New(rand.NewSource(3)), 4, 4, 0), false, nil).mesh
	ws := m.Workspace()
	var first, second []PolyRef
	require.True(t, m.FindPath(common.V3(0.5, 0, 0.5), common.V3(3.5, 0, 3.5), &first).Succeed())
	require.True(t, m.FindPath(common.V3(3.5, 0, 0.5), common.V3(0.5, 0, 3.5), &second).Succeed())
	require.True(t, m.FindPath(common.V3(0.5, 0, 0.5), common.V3(3.5, 0, 3.5), &second).Succeed())
	assert.Equal(t, first, second)
	assert.Same(t, ws, m.Workspace())
	assert.Equal(t, 7, len(first))
}

func TestNodeQueueDecreaseKey(t *testing.T) {
	ws := newSearchWorkspace(4)
	for i, f := range []float32{4, 3, 2, 1} {
		n := ws.Node(PolyRef(i))
		n.F = f
		ws.open.Offer(n)
	}
	n0 := ws.Node(0)
	n0.F = 0.5
	assert.True(t, ws.open.Update(n0))
	assert.Same(t, n0, ws.open.Peek())

	var order []PolyRef
	for !ws.open.Empty() {
		n := ws.open.Poll()
		assert.Equal(t, -1, n.GetIndex())
		order = append(order, n.Id)
	}
	assert.Equal(t, []PolyRef{0, 3, 2, 1}, order)
	assert.False(t, ws.open.Update(n0))
}

func TestNodeQueueTieBreak(t *testing.T) {
	ws := newSearchWorkspace(3)
	for _, id := range []PolyRef{2, 0, 1} {
		n := ws.Node(id)
		n.F, n.H = 1, 0.5
		ws.open.Offer(n)
	}
	ws.Node(1).H = 0.25
	ws.open.Update(ws.Node(1))
	assert.Equal(t, PolyRef(1), ws.open.Poll().Id)
	assert.Equal(t, PolyRef(0), ws.open.Poll().Id)
	assert.Equal(t, PolyRef(2), ws.open.Poll().Id)
}
