package debug_utils

import (
	"strconv"

	"github.com/gorustyt/fenav/common"
	"github.com/gorustyt/fenav/navmesh"
)

const (
	DU_DRAWNAVMESH_CLOSEDLIST  = 0x02
	DU_DRAWNAVMESH_COLOR_POLYS = 0x04
	DU_DRAWNAVMESH_POLY_IDS    = 0x08
)

func polyVertex(mesh *navmesh.NavMesh, p *navmesh.Poly, j int) common.Vec3 {
	v, _ := mesh.Vertex(p.Verts[j])
	return v
}

func drawPolyBoundaries(dd DuDebugDraw, mesh *navmesh.NavMesh, col Colorb, linew float32, inner bool) {
	dd.Begin(DU_DRAW_LINES, linew)
	for _, p := range mesh.Polys() {
		nj := len(p.Verts)
		for j := 0; j < nj; j++ {
			shared := false
			for _, l := range p.Neighbors {
				if int(l.EdgeA) == j {
					shared = true
					break
				}
			}
			if shared != inner {
				continue
			}
			// Shared edges are visited from both sides; draw them once.
			if inner && !ownsEdge(p, j) {
				continue
			}
			dd.Vertex(polyVertex(mesh, p, j), col)
			dd.Vertex(polyVertex(mesh, p, common.Next(j, nj)), col)
		}
	}
	dd.End()
}

func ownsEdge(p *navmesh.Poly, j int) bool {
	for _, l := range p.Neighbors {
		if int(l.EdgeA) == j && l.Ref < p.Id {
			return false
		}
	}
	return true
}

// DrawNavMeshPolys fills every polygon as a triangle fan. Polygons closed by
// the last search are highlighted when DU_DRAWNAVMESH_CLOSEDLIST is set.
func DrawNavMeshPolys(dd DuDebugDraw, mesh *navmesh.NavMesh, flags int) {
	ws := mesh.Workspace()
	dd.Begin(DU_DRAW_TRIS)
	for _, p := range mesh.Polys() {
		var col Colorb
		if node := ws.Node(p.Id); flags&DU_DRAWNAVMESH_CLOSEDLIST != 0 && node != nil && node.IsClosed() {
			col = DuRGBA(255, 196, 0, 64)
		} else if flags&DU_DRAWNAVMESH_COLOR_POLYS != 0 {
			col = DuIntToCol(int(p.Id)+1, 128)
		} else {
			col = DuRGBA(0, 192, 255, 64)
		}
		v0 := polyVertex(mesh, p, 0)
		for j := 2; j < len(p.Verts); j++ {
			dd.Vertex(v0, col)
			dd.Vertex(polyVertex(mesh, p, j-1), col)
			dd.Vertex(polyVertex(mesh, p, j), col)
		}
	}
	dd.End()
}

func DuDebugDrawNavMesh(dd DuDebugDraw, mesh *navmesh.NavMesh, flags int) {
	if dd == nil || mesh == nil {
		return
	}
	DrawNavMeshPolys(dd, mesh, flags)

	// Draw inter poly boundaries
	drawPolyBoundaries(dd, mesh, DuRGBA(0, 48, 64, 32), 1.5, true)

	// Draw outer poly boundaries
	drawPolyBoundaries(dd, mesh, DuRGBA(0, 48, 64, 220), 2.5, false)

	vcol := DuRGBA(0, 0, 0, 196)
	dd.Begin(DU_DRAW_POINTS, 3.0)
	for _, v := range mesh.Vertices() {
		dd.Vertex(v, vcol)
	}
	dd.End()

	if td, ok := dd.(DuTextDraw); ok && flags&DU_DRAWNAVMESH_POLY_IDS != 0 {
		for _, p := range mesh.Polys() {
			td.Text(p.Centroid, strconv.Itoa(int(p.Id)), DuRGBA(0, 0, 0, 255))
		}
	}
}

// DuDebugDrawNavMeshPoly fills one polygon translucently and outlines it.
func DuDebugDrawNavMeshPoly(dd DuDebugDraw, mesh *navmesh.NavMesh, ref navmesh.PolyRef, col Colorb) {
	if dd == nil || mesh == nil {
		return
	}
	p := mesh.Poly(ref)
	if p == nil {
		return
	}
	c := DuTransCol(col, 64)
	dd.Begin(DU_DRAW_TRIS)
	v0 := polyVertex(mesh, p, 0)
	for j := 2; j < len(p.Verts); j++ {
		dd.Vertex(v0, c)
		dd.Vertex(polyVertex(mesh, p, j-1), c)
		dd.Vertex(polyVertex(mesh, p, j), c)
	}
	dd.End()

	oc := DuDarkenCol(DuTransCol(col, 220))
	dd.Begin(DU_DRAW_LINES, 1.5)
	for j := range p.Verts {
		dd.Vertex(polyVertex(mesh, p, j), oc)
		dd.Vertex(polyVertex(mesh, p, common.Next(j, len(p.Verts))), oc)
	}
	dd.End()
}

// DuDebugDrawCorridor highlights the corridor polygons and draws each portal
// with its left end in green and its right end in red.
func DuDebugDrawCorridor(dd DuDebugDraw, mesh *navmesh.NavMesh, corridor []navmesh.PolyRef, col Colorb) {
	if dd == nil || mesh == nil {
		return
	}
	for _, ref := range corridor {
		DuDebugDrawNavMeshPoly(dd, mesh, ref, col)
	}

	pcol := duMultCol(col, 160)
	dd.Begin(DU_DRAW_LINES, 2.0)
	for i := 0; i+1 < len(corridor); i++ {
		left, right, status := mesh.Portal(corridor[i], corridor[i+1])
		if status.Failed() {
			continue
		}
		dd.Vertex(left, DuTransCol(pcol, 220))
		dd.Vertex(right, DuTransCol(pcol, 220))
	}
	dd.End()

	dd.Begin(DU_DRAW_POINTS, 6.0)
	for i := 0; i+1 < len(corridor); i++ {
		left, right, status := mesh.Portal(corridor[i], corridor[i+1])
		if status.Failed() {
			continue
		}
		dd.Vertex(left, DuRGBA(0, 160, 0, 220))
		dd.Vertex(right, DuRGBA(200, 0, 0, 220))
	}
	dd.End()
}

// DuDebugDrawNavMeshNodes draws the search tree of the last A* run: every
// reached polygon centroid linked to its parent, shaded from cheap to
// expensive.
func DuDebugDrawNavMeshNodes(dd DuDebugDraw, mesh *navmesh.NavMesh) {
	if dd == nil || mesh == nil {
		return
	}
	ws := mesh.Workspace()
	var maxG float32
	for i := 0; i < ws.Len(); i++ {
		if n := ws.Node(navmesh.PolyRef(i)); n.Flags != 0 {
			maxG = max(maxG, n.G)
		}
	}
	near, far := DuRGBA(255, 192, 0, 255), DuRGBA(160, 0, 0, 255)
	nodeCol := func(g float32) Colorb {
		if maxG <= 0 {
			return near
		}
		return DuLerpCol(near, far, uint8(common.Clamp(g/maxG, 0, 1)*255))
	}

	dd.Begin(DU_DRAW_POINTS, 4.0)
	for i := 0; i < ws.Len(); i++ {
		n := ws.Node(navmesh.PolyRef(i))
		if n.Flags == 0 {
			continue
		}
		dd.Vertex(mesh.Poly(n.Id).Centroid, nodeCol(n.G))
	}
	dd.End()

	dd.Begin(DU_DRAW_LINES, 2.0)
	for i := 0; i < ws.Len(); i++ {
		n := ws.Node(navmesh.PolyRef(i))
		if n.Flags == 0 || n.Parent == navmesh.InvalidRef {
			continue
		}
		parent := mesh.Poly(n.Parent)
		if parent == nil {
			continue
		}
		col := DuTransCol(nodeCol(n.G), 128)
		dd.Vertex(mesh.Poly(n.Id).Centroid, col)
		dd.Vertex(parent.Centroid, col)
	}
	dd.End()
}

// DuDebugDrawPath draws a waypoint polyline with direction arrows and
// circles at both ends.
func DuDebugDrawPath(dd DuDebugDraw, waypoints []common.Vec3, col Colorb, lineWidth float32) {
	if dd == nil || len(waypoints) == 0 {
		return
	}
	dd.Begin(DU_DRAW_LINES, lineWidth)
	for i := 1; i < len(waypoints); i++ {
		dd.Vertex(waypoints[i-1], col)
		dd.Vertex(waypoints[i], col)
		DuAppendArrowHead(dd, waypoints[i-1], waypoints[i], 0.15, col)
	}
	dd.End()

	dd.Begin(DU_DRAW_POINTS, 5.0)
	for _, p := range waypoints {
		dd.Vertex(p, DuDarkenCol(col))
	}
	dd.End()

	start, end := waypoints[0], waypoints[len(waypoints)-1]
	DuDebugDrawCircle(dd, start[0], start[1], start[2], 0.1, DuRGBA(0, 160, 0, 255), lineWidth)
	DuDebugDrawCross(dd, end[0], end[1], end[2], 0.1, DuRGBA(200, 0, 0, 255), lineWidth)
}
