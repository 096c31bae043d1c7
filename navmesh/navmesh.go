package navmesh

import (
	"fmt"

	"github.com/gorustyt/fenav/common"
	"github.com/gorustyt/fenav/common/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Vec3 = common.Vec3

// PolyRef identifies a polygon by its insertion index.
type PolyRef int32

const (
	InvalidRef   PolyRef = -1
	InvalidIndex int32   = -1

	MinVertsPerPoly = 3
	MaxVertsPerPoly = 8
)

// PolyLink is one shared edge of a polygon. EdgeA and EdgeB are positions
// within the owning polygon's Verts, not global vertex indices.
type PolyLink struct {
	Ref   PolyRef
	EdgeA int32
	EdgeB int32
}

type Poly struct {
	Id        PolyRef
	Verts     []int32
	Neighbors []PolyLink

	Centroid Vec3
	Normal   Vec3
	Bounds   common.Bounds
}

// Neighbor returns the link toward ref, if any.
func (p *Poly) Neighbor(ref PolyRef) (PolyLink, bool) {
	for _, l := range p.Neighbors {
		if l.Ref == ref {
			return l, true
		}
	}
	return PolyLink{}, false
}

// NavMesh owns a vertex pool, a polygon pool and the A* search workspace.
//
// A NavMesh is not safe for concurrent use. FindPath and SmoothPath share
// the workspace, so at most one query may be in flight per mesh. Separate
// meshes share nothing and may be searched from different goroutines.
type NavMesh struct {
	verts []Vec3
	polys []*Poly

	ws        *SearchWorkspace
	connected bool

	eps      float32
	maxVerts int
	maxPolys int
	log      *zap.Logger
}

type Option func(m *NavMesh)

func WithLogger(l *zap.Logger) Option {
	return func(m *NavMesh) {
		if l != nil {
			m.log = l
		}
	}
}

// WithEpsilon sets the point/vertex coincidence tolerance.
func WithEpsilon(eps float32) Option {
	return func(m *NavMesh) {
		if eps > 0 {
			m.eps = eps
		}
	}
}

// WithCapacity limits the vertex and polygon pools. Zero means unlimited.
func WithCapacity(maxVerts, maxPolys int) Option {
	return func(m *NavMesh) {
		m.maxVerts = maxVerts
		m.maxPolys = maxPolys
	}
}

func NewNavMesh(opts ...Option) *NavMesh {
	m := &NavMesh{
		eps: common.Epsilon,
		log: logger.L().Named("navmesh"),
		ws:  newSearchWorkspace(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *NavMesh) Epsilon() float32 { return m.eps }
func (m *NavMesh) VertCount() int   { return len(m.verts) }
func (m *NavMesh) PolyCount() int   { return len(m.polys) }
func (m *NavMesh) IsConnected() bool {
	return m.connected
}

// Vertices returns the vertex pool. The slice must not be modified.
func (m *NavMesh) Vertices() []Vec3 { return m.verts }

// Polys returns the polygon pool. The polygons must not be modified.
func (m *NavMesh) Polys() []*Poly { return m.polys }

func (m *NavMesh) Vertex(i int32) (Vec3, bool) {
	if i < 0 || int(i) >= len(m.verts) {
		return Vec3{}, false
	}
	return m.verts[i], true
}

func (m *NavMesh) Poly(ref PolyRef) *Poly {
	if !m.IsValidPolyRef(ref) {
		return nil
	}
	return m.polys[ref]
}

func (m *NavMesh) IsValidPolyRef(ref PolyRef) bool {
	return ref >= 0 && int(ref) < len(m.polys)
}

// Workspace exposes the A* scratch state of the last search.
func (m *NavMesh) Workspace() *SearchWorkspace { return m.ws }

// polyVerts resolves the vertex loop of p into buf.
func (m *NavMesh) polyVerts(p *Poly, buf []Vec3) []Vec3 {
	for _, vi := range p.Verts {
		buf = append(buf, m.verts[vi])
	}
	return buf
}

// AddVertex appends a vertex and returns its index. Vertices are not
// deduplicated.
func (m *NavMesh) AddVertex(pos Vec3) (int32, NavStatus) {
	if m.maxVerts > 0 && len(m.verts) >= m.maxVerts {
		m.log.Error("vertex pool exhausted", zap.Int("capacity", m.maxVerts))
		return InvalidIndex, NAV_FAILURE | NAV_OUT_OF_MEMORY
	}
	m.verts = append(m.verts, pos)
	return int32(len(m.verts) - 1), NAV_SUCCESS
}

// AddPolygon copies the polygon definition, including any neighbor data
// already set, assigns its insertion index as id and caches the centroid,
// normal and bounds. The mesh must be reconnected before the next query.
func (m *NavMesh) AddPolygon(p Poly) (PolyRef, NavStatus) {
	if len(p.Verts) < MinVertsPerPoly || len(p.Verts) > MaxVertsPerPoly {
		m.log.Warn("polygon vertex count out of range", zap.Int("verts", len(p.Verts)))
		return InvalidRef, NAV_FAILURE | NAV_INVALID_PARAM
	}
	for _, vi := range p.Verts {
		if vi < 0 || int(vi) >= len(m.verts) {
			m.log.Warn("polygon references unknown vertex", zap.Int32("vertex", vi), zap.Int("verts", len(m.verts)))
			return InvalidRef, NAV_FAILURE | NAV_INVALID_PARAM
		}
	}
	if m.maxPolys > 0 && len(m.polys) >= m.maxPolys {
		m.log.Error("polygon pool exhausted", zap.Int("capacity", m.maxPolys))
		return InvalidRef, NAV_FAILURE | NAV_OUT_OF_MEMORY
	}

	poly := &Poly{
		Id:        PolyRef(len(m.polys)),
		Verts:     append([]int32(nil), p.Verts...),
		Neighbors: append([]PolyLink(nil), p.Neighbors...),
	}
	var buf [MaxVertsPerPoly]Vec3
	vs := m.polyVerts(poly, buf[:0])
	poly.Centroid = common.PolyCentroid(vs)
	poly.Normal = common.PolyNormal(vs)
	poly.Bounds = common.PolyBounds(vs)

	m.polys = append(m.polys, poly)
	m.connected = false
	return poly.Id, NAV_SUCCESS
}

// BuildConnections rebuilds polygon adjacency from scratch. Two edges are
// shared when they reference the same two vertex indices in either order.
// It must run after the last AddPolygon and before any query.
func (m *NavMesh) BuildConnections() {
	for _, p := range m.polys {
		p.Neighbors = p.Neighbors[:0]
	}
	links := 0
	for i := 0; i < len(m.polys); i++ {
		pa := m.polys[i]
		na := len(pa.Verts)
		for j := i + 1; j < len(m.polys); j++ {
			pb := m.polys[j]
			nb := len(pb.Verts)
			for ea := 0; ea < na; ea++ {
				ea1 := common.Next(ea, na)
				a0, a1 := pa.Verts[ea], pa.Verts[ea1]
				for eb := 0; eb < nb; eb++ {
					eb1 := common.Next(eb, nb)
					b0, b1 := pb.Verts[eb], pb.Verts[eb1]
					if (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0) {
						pa.Neighbors = append(pa.Neighbors, PolyLink{Ref: pb.Id, EdgeA: int32(ea), EdgeB: int32(ea1)})
						pb.Neighbors = append(pb.Neighbors, PolyLink{Ref: pa.Id, EdgeA: int32(eb), EdgeB: int32(eb1)})
						links++
					}
				}
			}
		}
	}
	m.ws.Resize(len(m.polys))
	m.connected = true
	m.log.Info("navmesh connections built",
		zap.Int("verts", len(m.verts)),
		zap.Int("polys", len(m.polys)),
		zap.Int("sharedEdges", links))
}

// FindPolygonForPoint returns the first polygon, in id order, whose xz
// footprint contains point.
//
// The footprint test is half-open: a point lying exactly on an edge is
// inside the polygon on the edge's +x side, or its +z side for edges
// parallel to x. A point on a shared edge is claimed by exactly one
// polygon, and points on the mesh's outer max-x and max-z edges are off
// the mesh. Only a point within the vertex epsilon of a shared vertex is
// claimed by several polygons, and then the lowest id wins.
func (m *NavMesh) FindPolygonForPoint(point Vec3) (PolyRef, NavStatus) {
	if !common.Visfinite(point) {
		m.log.Warn("point is not finite", zap.Any("point", point))
		return InvalidRef, NAV_FAILURE | NAV_INVALID_PARAM
	}
	var buf [MaxVertsPerPoly]Vec3
	for _, p := range m.polys {
		if !p.Bounds.ContainsXZ(point, m.eps) {
			continue
		}
		if common.PointInPoly(m.polyVerts(p, buf[:0]), point, m.eps) {
			return p.Id, NAV_SUCCESS
		}
	}
	m.log.Debug("point is not on the navmesh", zap.Any("point", point))
	return InvalidRef, NAV_FAILURE | NAV_NO_PATH
}

// Portal returns the edge shared by two adjacent polygons, split into its
// left and right endpoints as seen when travelling from -> to.
func (m *NavMesh) Portal(from, to PolyRef) (left, right Vec3, status NavStatus) {
	if !m.IsValidPolyRef(from) || !m.IsValidPolyRef(to) {
		return left, right, NAV_FAILURE | NAV_INVALID_PARAM
	}
	fromPoly, toPoly := m.polys[from], m.polys[to]
	link, ok := fromPoly.Neighbor(to)
	if !ok {
		return left, right, NAV_FAILURE | NAV_BAD_CORRIDOR
	}
	va := m.verts[fromPoly.Verts[link.EdgeA]]
	vb := m.verts[fromPoly.Verts[link.EdgeB]]
	dir := toPoly.Centroid.Sub(fromPoly.Centroid)
	edge := vb.Sub(va)
	if common.Vcross2D(dir, edge) > 0 {
		return vb, va, NAV_SUCCESS
	}
	return va, vb, NAV_SUCCESS
}

// PathCost sums the centroid distances along a corridor.
func (m *NavMesh) PathCost(corridor []PolyRef) float32 {
	var cost float32
	for i := 1; i < len(corridor); i++ {
		a, b := m.Poly(corridor[i-1]), m.Poly(corridor[i])
		if a == nil || b == nil {
			continue
		}
		cost += common.Vdist(a.Centroid, b.Centroid)
	}
	return cost
}

type Stats struct {
	Vertices  int
	Polygons  int
	Links     int
	Connected bool
	Bounds    common.Bounds
}

func (m *NavMesh) Stats() Stats {
	s := Stats{
		Vertices:  len(m.verts),
		Polygons:  len(m.polys),
		Connected: m.connected,
		Bounds:    common.PolyBounds(m.verts),
	}
	for _, p := range m.polys {
		s.Links += len(p.Neighbors)
	}
	return s
}

// Validate reports every structural problem found in the mesh: vertex
// indices out of range, degenerate polygons, dangling links and
// asymmetric adjacency.
func (m *NavMesh) Validate() error {
	var err error
	if !m.connected {
		err = multierr.Append(err, fmt.Errorf("navmesh: connections not built"))
	}
	var buf [MaxVertsPerPoly]Vec3
	for _, p := range m.polys {
		inRange := true
		for _, vi := range p.Verts {
			if vi < 0 || int(vi) >= len(m.verts) {
				err = multierr.Append(err, fmt.Errorf("poly %d: vertex index %d out of range", p.Id, vi))
				inRange = false
			}
		}
		if !inRange {
			continue
		}
		if area := common.PolyArea2D(m.polyVerts(p, buf[:0])); common.Abs(area) < m.eps*m.eps {
			err = multierr.Append(err, fmt.Errorf("poly %d: degenerate footprint (area %g)", p.Id, area))
		}
		for _, l := range p.Neighbors {
			err = multierr.Append(err, m.validateLink(p, l))
		}
	}
	return err
}

func (m *NavMesh) validateLink(p *Poly, l PolyLink) error {
	n := int32(len(p.Verts))
	if !m.IsValidPolyRef(l.Ref) || l.Ref == p.Id {
		return fmt.Errorf("poly %d: link to invalid poly %d", p.Id, l.Ref)
	}
	if l.EdgeA < 0 || l.EdgeA >= n || l.EdgeB < 0 || l.EdgeB >= n {
		return fmt.Errorf("poly %d: link to %d has edge (%d,%d) out of range", p.Id, l.Ref, l.EdgeA, l.EdgeB)
	}
	other := m.polys[l.Ref]
	back, ok := other.Neighbor(p.Id)
	if !ok {
		return fmt.Errorf("poly %d: neighbor %d does not link back", p.Id, l.Ref)
	}
	on := int32(len(other.Verts))
	if back.EdgeA < 0 || back.EdgeA >= on || back.EdgeB < 0 || back.EdgeB >= on {
		return fmt.Errorf("poly %d: link to %d has edge (%d,%d) out of range", other.Id, p.Id, back.EdgeA, back.EdgeB)
	}
	a0, a1 := p.Verts[l.EdgeA], p.Verts[l.EdgeB]
	b0, b1 := other.Verts[back.EdgeA], other.Verts[back.EdgeB]
	if !((a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0)) {
		return fmt.Errorf("poly %d: edge (%d,%d) does not match neighbor %d edge (%d,%d)", p.Id, a0, a1, l.Ref, b0, b1)
	}
	return nil
}
