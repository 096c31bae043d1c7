package debug_utils

import (
	"math"

	"github.com/gorustyt/fenav/common"
)

type DuDebugDrawPrimitives int

const (
	DU_DRAW_POINTS DuDebugDrawPrimitives = iota
	DU_DRAW_LINES
	DU_DRAW_TRIS
)

type DuDebugDraw interface {
	/// Begin drawing primitives.
	///  @param prim [in] primitive type to draw, one of DuDebugDrawPrimitives.
	///  @param size [in] size of a primitive, applies to point size and line width only.
	Begin(prim DuDebugDrawPrimitives, size ...float32)

	/// Submit a vertex
	///  @param pos [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex(pos common.Vec3, color Colorb)

	/// Submit a vertex
	///  @param x,y,z [in] position of the verts.
	///  @param color [in] color of the verts.
	Vertex1(x, y, z float32, color Colorb)

	/// End drawing primitives.
	End()
}

// DuTextDraw is implemented by backends that can place labels.
type DuTextDraw interface {
	Text(pos common.Vec3, text string, color Colorb)
}

// DuDisplayList buffers the vertices of one Begin/End block.
type DuDisplayList struct {
	m_pos   []common.Vec3
	m_color []Colorb

	m_prim     DuDebugDrawPrimitives
	m_primSize float32
}

func NewDuDisplayList(cap int) *DuDisplayList {
	if cap < 8 {
		cap = 8
	}
	return &DuDisplayList{
		m_pos:      make([]common.Vec3, 0, cap),
		m_color:    make([]Colorb, 0, cap),
		m_prim:     DU_DRAW_LINES,
		m_primSize: 1.0,
	}
}

func (d *DuDisplayList) clear() {
	d.m_pos = d.m_pos[:0]
	d.m_color = d.m_color[:0]
}

func (d *DuDisplayList) begin(prim DuDebugDrawPrimitives, size float32) {
	d.clear()
	d.m_prim = prim
	d.m_primSize = size
}

func (d *DuDisplayList) vertex(pos common.Vec3, color Colorb) {
	d.m_pos = append(d.m_pos, pos)
	d.m_color = append(d.m_color, color)
}

func (d *DuDisplayList) Size() int { return len(d.m_pos) }

func DuDebugDrawCircle(dd DuDebugDraw, x, y, z,
	r float32, col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCircle(dd, x, y, z, r, col)
	dd.End()
}

func DuDebugDrawCross(dd DuDebugDraw, x, y, z,
	size float32, col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	DuAppendCross(dd, x, y, z, size, col)
	dd.End()
}

func DuDebugDrawGridXZ(dd DuDebugDraw, ox, oy, oz float32,
	w, h int, size float32,
	col Colorb, lineWidth float32) {
	if dd == nil {
		return
	}

	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 0; i <= h; i++ {
		dd.Vertex1(ox, oy, oz+float32(i)*size, col)
		dd.Vertex1(ox+float32(w)*size, oy, oz+float32(i)*size, col)
	}
	for i := 0; i <= w; i++ {
		dd.Vertex1(ox+float32(i)*size, oy, oz, col)
		dd.Vertex1(ox+float32(i)*size, oy, oz+float32(h)*size, col)
	}
	dd.End()
}

var circleDir = func() (dir [40 * 2]float32) {
	const NUM_SEG = 40
	for i := 0; i < NUM_SEG; i++ {
		a := float64(i) / NUM_SEG * math.Pi * 2
		dir[i*2] = float32(math.Cos(a))
		dir[i*2+1] = float32(math.Sin(a))
	}
	return dir
}()

func DuAppendCircle(dd DuDebugDraw, x, y, z,
	r float32, col Colorb) {
	if dd == nil {
		return
	}
	const NUM_SEG = len(circleDir) / 2
	i := 0
	j := NUM_SEG - 1
	for i < NUM_SEG {
		dd.Vertex1(x+circleDir[j*2+0]*r, y, z+circleDir[j*2+1]*r, col)
		dd.Vertex1(x+circleDir[i*2+0]*r, y, z+circleDir[i*2+1]*r, col)
		j = i
		i++
	}
}

func DuAppendCross(dd DuDebugDraw, x, y, z,
	s float32, col Colorb) {
	if dd == nil {
		return
	}
	dd.Vertex1(x-s, y, z, col)
	dd.Vertex1(x+s, y, z, col)
	dd.Vertex1(x, y-s, z, col)
	dd.Vertex1(x, y+s, z, col)
	dd.Vertex1(x, y, z-s, col)
	dd.Vertex1(x, y, z+s, col)
}

// DuAppendArrowHead appends a two-stroke head at q for the segment p->q,
// flattened onto the xz-plane.
func DuAppendArrowHead(dd DuDebugDraw, p, q common.Vec3, s float32, col Colorb) {
	const eps = 0.001
	if dd == nil {
		return
	}
	if common.Vdist2DSqr(p, q) < eps*eps {
		return
	}
	az := common.V3(p[0]-q[0], 0, p[2]-q[2]).Normalize()
	ax := common.V3(az[2], 0, -az[0])

	dd.Vertex(q, col)
	dd.Vertex1(q[0]+az[0]*s+ax[0]*s/3, q[1], q[2]+az[2]*s+ax[2]*s/3, col)

	dd.Vertex(q, col)
	dd.Vertex1(q[0]+az[0]*s-ax[0]*s/3, q[1], q[2]+az[2]*s-ax[2]*s/3, col)
}
