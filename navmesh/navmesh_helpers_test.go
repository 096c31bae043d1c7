package navmesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gorustyt/fenav/common"
	"github.com/stretchr/testify/require"
)

type cell struct{ x, z int }

// testMesh is a grid of unit cells, each either one square or two triangles.
type testMesh struct {
	mesh  *NavMesh
	polys map[cell][]PolyRef
}

func buildGrid(t testing.TB, cells []cell, triangulate bool, rng *rand.Rand) *testMesh {
	t.Helper()
	m := NewNavMesh()
	verts := map[cell]int32{}
	vert := func(x, z int) int32 {
		if i, ok := verts[cell{x, z}]; ok {
			return i
		}
		i, status := m.AddVertex(common.V3(float32(x), 0, float32(z)))
		require.True(t, status.Succeed())
		verts[cell{x, z}] = i
		return i
	}
	tm := &testMesh{mesh: m, polys: map[cell][]PolyRef{}}
	for _, c := range cells {
		v00 := vert(c.x, c.z)
		v10 := vert(c.x+1, c.z)
		v11 := vert(c.x+1, c.z+1)
		v01 := vert(c.x, c.z+1)
		var loops [][]int32
		switch {
		case !triangulate:
			loops = [][]int32{{v00, v10, v11, v01}}
		case rng != nil && rng.Intn(2) == 0:
			loops = [][]int32{{v00, v10, v11}, {v00, v11, v01}}
		default:
			loops = [][]int32{{v00, v10, v01}, {v10, v11, v01}}
		}
		for _, loop := range loops {
			ref, status := m.AddPolygon(Poly{Verts: loop})
			require.True(t, status.Succeed())
			tm.polys[c] = append(tm.polys[c], ref)
		}
	}
	m.BuildConnections()
	return tm
}

// twoSquares is the 2x1 mesh: polygon 0 covers [0,1]x[0,1], polygon 1
// covers [1,2]x[0,1] on the xz-plane.
func twoSquares(t testing.TB) *NavMesh {
	return buildGrid(t, []cell{{0, 0}, {1, 0}}, false, nil).mesh
}

// lShape is three squares: 0 at (0,0), 1 at (1,0), 2 at (1,1).
func lShape(t testing.TB) *NavMesh {
	return buildGrid(t, []cell{{0, 0}, {1, 0}, {1, 1}}, false, nil).mesh
}

// randomCells returns a w*h grid with some cells knocked out.
func randomCells(rng *rand.Rand, w, h int, holeChance float64) []cell {
	var cells []cell
	for x := 0; x < w; x++ {
		for z := 0; z < h; z++ {
			if rng.Float64() < holeChance {
				continue
			}
			cells = append(cells, cell{x, z})
		}
	}
	return cells
}

// interiorPoint picks a point well inside polygon ref.
func interiorPoint(m *NavMesh, ref PolyRef, rng *rand.Rand) Vec3 {
	p := m.Poly(ref)
	vs := m.polyVerts(p, nil)
	if len(vs) == 3 {
		w1 := 0.15 + rng.Float32()*0.27
		w2 := 0.15 + rng.Float32()*0.27
		w3 := 1 - w1 - w2
		return vs[0].Mul(w1).Add(vs[1].Mul(w2)).Add(vs[2].Mul(w3))
	}
	b := p.Bounds
	u := 0.1 + rng.Float32()*0.8
	v := 0.1 + rng.Float32()*0.8
	return common.V3(b.Min[0]+u*(b.Max[0]-b.Min[0]), 0, b.Min[2]+v*(b.Max[2]-b.Min[2]))
}

// shortestCosts runs Floyd-Warshall over the centroid-distance graph.
func shortestCosts(m *NavMesh) [][]float64 {
	n := m.PolyCount()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, p := range m.Polys() {
		for _, l := range p.Neighbors {
			d := float64(common.Vdist(p.Centroid, m.Poly(l.Ref).Centroid))
			dist[p.Id][l.Ref] = math.Min(dist[p.Id][l.Ref], d)
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}
	return dist
}

// segDist2D is the xz distance between segments ab and cd.
func segDist2D(a, b, c, d Vec3) float32 {
	d1 := common.TriArea2D(a, b, c)
	d2 := common.TriArea2D(a, b, d)
	d3 := common.TriArea2D(c, d, a)
	d4 := common.TriArea2D(c, d, b)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return 0
	}
	best := float32(math.Inf(1))
	for _, q := range [][3]Vec3{{a, c, d}, {b, c, d}, {c, a, b}, {d, a, b}} {
		_, ds := common.DistancePtSegSqr2D(q[0], q[1], q[2])
		best = min(best, ds)
	}
	return float32(math.Sqrt(float64(best)))
}

func nan() float32 { return float32(math.NaN()) }
