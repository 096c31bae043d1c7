package navmesh

import (
	"math/rand"
	"testing"

	"github.com/gorustyt/fenav/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestAddPolygonCachesGeometry(t *testing.T) {
	m := twoSquares(t)
	require.Equal(t, 6, m.VertCount())
	require.Equal(t, 2, m.PolyCount())

	p := m.Poly(1)
	require.NotNil(t, p)
	assert.Equal(t, PolyRef(1), p.Id)
	assert.InDelta(t, 1.5, p.Centroid[0], 1e-6)
	assert.InDelta(t, 0.5, p.Centroid[2], 1e-6)
	assert.InDelta(t, 1, common.Abs(p.Normal[1]), 1e-6)
	assert.Equal(t, common.V3(1, 0, 0), p.Bounds.Min)
	assert.Equal(t, common.V3(2, 0, 1), p.Bounds.Max)
	assert.Nil(t, m.Poly(2))
	assert.Nil(t, m.Poly(InvalidRef))
}

func TestAddPolygonRejectsBadInput(t *testing.T) {
	m := NewNavMesh()
	for i := 0; i < 4; i++ {
		m.AddVertex(common.V3(float32(i), 0, float32(i*i)))
	}

	ref, status := m.AddPolygon(Poly{Verts: []int32{0, 1}})
	assert.Equal(t, InvalidRef, ref)
	assert.True(t, status.Detail(NAV_INVALID_PARAM))

	_, status = m.AddPolygon(Poly{Verts: []int32{0, 1, 9}})
	assert.True(t, status.Detail(NAV_INVALID_PARAM))

	_, status = m.AddPolygon(Poly{Verts: make([]int32, MaxVertsPerPoly+1)})
	assert.True(t, status.Detail(NAV_INVALID_PARAM))
	assert.Equal(t, 0, m.PolyCount())
}

func TestCapacity(t *testing.T) {
	m := NewNavMesh(WithCapacity(3, 1))
	for i := 0; i < 3; i++ {
		_, status := m.AddVertex(common.V3(float32(i), 0, float32(i%2)))
		require.True(t, status.Succeed())
	}
	idx, status := m.AddVertex(common.V3(5, 0, 5))
	assert.Equal(t, InvalidIndex, idx)
	assert.True(t, status.Failed())
	assert.True(t, status.Detail(NAV_OUT_OF_MEMORY))

	_, status = m.AddPolygon(Poly{Verts: []int32{0, 1, 2}})
	require.True(t, status.Succeed())
	_, status = m.AddPolygon(Poly{Verts: []int32{0, 2, 1}})
	assert.True(t, status.Detail(NAV_OUT_OF_MEMORY))
}

func TestAddPolygonCopiesInput(t *testing.T) {
	m := NewNavMesh()
	for _, v := range []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}} {
		m.AddVertex(v)
	}
	verts := []int32{0, 1, 2}
	m.AddPolygon(Poly{Verts: verts})
	verts[0] = 2
	assert.Equal(t, []int32{0, 1, 2}, m.Poly(0).Verts)
	assert.False(t, m.IsConnected())
}

func TestBuildConnectionsSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 10; round++ {
		m := buildGrid(t, randomCells(rng, 4, 4, 0.25), round%2 == 0, rng).mesh
		require.True(t, m.IsConnected())
		require.NoError(t, m.Validate())
		for _, p := range m.Polys() {
			for _, l := range p.Neighbors {
				q := m.Poly(l.Ref)
				back, ok := q.Neighbor(p.Id)
				require.True(t, ok, "poly %d -> %d has no back link", p.Id, l.Ref)
				a := []int32{p.Verts[l.EdgeA], p.Verts[l.EdgeB]}
				b := []int32{q.Verts[back.EdgeA], q.Verts[back.EdgeB]}
				assert.ElementsMatch(t, a, b)
			}
		}
	}
}

func TestBuildConnectionsRebuildsFromScratch(t *testing.T) {
	m := NewNavMesh()
	for _, v := range []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}} {
		m.AddVertex(v)
	}
	// stale neighbor data supplied by the caller is discarded
	m.AddPolygon(Poly{Verts: []int32{0, 1, 2}, Neighbors: []PolyLink{{Ref: 5, EdgeA: 0, EdgeB: 1}}})
	m.AddPolygon(Poly{Verts: []int32{0, 2, 3}})
	m.BuildConnections()
	m.BuildConnections()

	require.Len(t, m.Poly(0).Neighbors, 1)
	require.Len(t, m.Poly(1).Neighbors, 1)
	assert.Equal(t, PolyLink{Ref: 1, EdgeA: 2, EdgeB: 0}, m.Poly(0).Neighbors[0])
	assert.Equal(t, PolyLink{Ref: 0, EdgeA: 0, EdgeB: 1}, m.Poly(1).Neighbors[0])
	assert.Equal(t, 2, m.Workspace().Len())
}

func TestFindPolygonForPoint(t *testing.T) {
	m := twoSquares(t)

	ref, status := m.FindPolygonForPoint(common.V3(0.5, 0, 0.5))
	assert.True(t, status.Succeed())
	assert.Equal(t, PolyRef(0), ref)

	ref, _ = m.FindPolygonForPoint(common.V3(1.5, 3, 0.5))
	assert.Equal(t, PolyRef(1), ref, "height is ignored")

	// shared corner: vertex tolerance lets both claim it, lowest id wins
	ref, _ = m.FindPolygonForPoint(common.V3(1, 0, 0))
	assert.Equal(t, PolyRef(0), ref)

	ref, status = m.FindPolygonForPoint(common.V3(5, 0, 5))
	assert.Equal(t, InvalidRef, ref)
	assert.True(t, status.Detail(NAV_NO_PATH))
}

func TestFindPolygonForPointOnEdges(t *testing.T) {
	m := twoSquares(t)
	cases := []struct {
		point Vec3
		want  PolyRef
	}{
		{common.V3(1, 0, 0.5), 1},          // shared edge goes to the +x polygon
		{common.V3(0.5, 0, 0), 0},          // outer min-z edge
		{common.V3(0, 0, 0.5), 0},          // outer min-x edge
		{common.V3(0.5, 0, 1), InvalidRef}, // outer max-z edge
		{common.V3(2, 0, 0.5), InvalidRef}, // outer max-x edge
		{common.V3(1.5, 0, 1), InvalidRef}, // outer max-z edge of polygon 1
	}
	for _, c := range cases {
		ref, status := m.FindPolygonForPoint(c.point)
		assert.Equal(t, c.want, ref, "%v", c.point)
		assert.Equal(t, c.want != InvalidRef, status.Succeed(), "%v", c.point)
	}

	// an edge parallel to x shared by polygons 1 and 2 goes to the +z polygon
	ref, _ := lShape(t).FindPolygonForPoint(common.V3(1.5, 0, 1))
	assert.Equal(t, PolyRef(2), ref)
}

func TestFindPolygonForPointIgnoresInsertionOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cells := randomCells(rng, 5, 5, 0.2)
	shuffled := append([]cell(nil), cells...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	a := buildGrid(t, cells, false, nil)
	b := buildGrid(t, shuffled, false, nil)
	for _, c := range cells {
		pt := common.V3(float32(c.x)+0.1+0.8*rng.Float32(), 0, float32(c.z)+0.1+0.8*rng.Float32())
		ra, sa := a.mesh.FindPolygonForPoint(pt)
		rb, sb := b.mesh.FindPolygonForPoint(pt)
		require.True(t, sa.Succeed())
		require.True(t, sb.Succeed())
		assert.Equal(t, a.polys[c][0], ra)
		assert.Equal(t, b.polys[c][0], rb)
		assert.Equal(t, a.mesh.Poly(ra).Centroid, b.mesh.Poly(rb).Centroid)
	}
}

func TestFindPolygonForPointRejectsNaN(t *testing.T) {
	m := twoSquares(t)
	_, status := m.FindPolygonForPoint(Vec3{nan(), 0, 0})
	assert.True(t, status.Detail(NAV_INVALID_PARAM))
}

func TestPortalOrientation(t *testing.T) {
	m := twoSquares(t)
	left, right, status := m.Portal(0, 1)
	require.True(t, status.Succeed())
	// travelling +x, left is toward +z
	assert.Equal(t, common.V3(1, 0, 1), left)
	assert.Equal(t, common.V3(1, 0, 0), right)

	left, right, _ = m.Portal(1, 0)
	assert.Equal(t, common.V3(1, 0, 0), left)
	assert.Equal(t, common.V3(1, 0, 1), right)

	m = lShape(t)
	_, _, status = m.Portal(0, 2)
	assert.True(t, status.Detail(NAV_BAD_CORRIDOR))
	_, _, status = m.Portal(0, 9)
	assert.True(t, status.Detail(NAV_INVALID_PARAM))
}

func TestPathCostAndStats(t *testing.T) {
	m := lShape(t)
	assert.InDelta(t, 2, m.PathCost([]PolyRef{0, 1, 2}), 1e-6)
	assert.Zero(t, m.PathCost([]PolyRef{0}))

	s := m.Stats()
	assert.Equal(t, 8, s.Vertices)
	assert.Equal(t, 3, s.Polygons)
	assert.Equal(t, 4, s.Links)
	assert.True(t, s.Connected)
	assert.Equal(t, common.V3(0, 0, 0), s.Bounds.Min)
	assert.Equal(t, common.V3(2, 0, 2), s.Bounds.Max)
}

func TestValidate(t *testing.T) {
	m := lShape(t)
	require.NoError(t, m.Validate())

	m.Poly(1).Neighbors = m.Poly(1).Neighbors[:0]
	m.Poly(0).Neighbors = append(m.Poly(0).Neighbors, PolyLink{Ref: 0, EdgeA: 0, EdgeB: 1})
	err := m.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 3)
	assert.Contains(t, err.Error(), "does not link back")
	assert.Contains(t, err.Error(), "invalid poly 0")

	m = NewNavMesh()
	for _, v := range []Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}} {
		m.AddVertex(v)
	}
	m.AddPolygon(Poly{Verts: []int32{0, 1, 2}})
	err = m.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Contains(t, err.Error(), "connections not built")
	assert.Contains(t, err.Error(), "degenerate")
}
