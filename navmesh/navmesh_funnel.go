package navmesh

import (
	"github.com/gorustyt/fenav/common"
	"go.uber.org/zap"
)

func appendWaypoint(pts []Vec3, pos Vec3) []Vec3 {
	if len(pts) > 0 && common.Vequal(pts[len(pts)-1], pos) {
		return pts
	}
	return append(pts, pos)
}

// SmoothPath pulls a taut string through a polygon corridor and writes the
// resulting steering points to waypoints, which is cleared first. The
// first point is startPos and the last is endPos. Every point in between
// is a portal endpoint where the path bends.
//
// A single-polygon corridor yields exactly [startPos, endPos]. If any two
// consecutive corridor polygons share no edge nothing is written and the
// whole call fails.
func (m *NavMesh) SmoothPath(corridor []PolyRef, startPos, endPos Vec3, waypoints *[]Vec3) NavStatus {
	if waypoints == nil {
		m.log.Warn("SmoothPath called without output waypoints")
		return NAV_FAILURE | NAV_INVALID_PARAM
	}
	*waypoints = (*waypoints)[:0]
	if len(corridor) == 0 {
		m.log.Warn("SmoothPath called with empty corridor")
		return NAV_FAILURE | NAV_INVALID_PARAM
	}
	if status := m.checkQueryable(); status.Failed() {
		return status
	}
	if !common.Visfinite(startPos) || !common.Visfinite(endPos) {
		m.log.Warn("SmoothPath with non-finite position",
			zap.Any("start", startPos), zap.Any("end", endPos))
		return NAV_FAILURE | NAV_INVALID_PARAM
	}
	for _, ref := range corridor {
		if !m.IsValidPolyRef(ref) {
			m.log.Warn("corridor references unknown polygon", zap.Int32("poly", int32(ref)))
			return NAV_FAILURE | NAV_INVALID_PARAM
		}
	}

	if len(corridor) == 1 {
		*waypoints = append(*waypoints, startPos, endPos)
		return NAV_SUCCESS
	}

	// Resolve every portal up front so a broken corridor produces no output.
	pathSize := len(corridor)
	lefts := make([]Vec3, pathSize)
	rights := make([]Vec3, pathSize)
	for i := 0; i+1 < pathSize; i++ {
		l, r, status := m.Portal(corridor[i], corridor[i+1])
		if status.Failed() {
			m.log.Warn("corridor polygons share no edge",
				zap.Int32("from", int32(corridor[i])),
				zap.Int32("to", int32(corridor[i+1])))
			return NAV_FAILURE | NAV_BAD_CORRIDOR
		}
		lefts[i], rights[i] = l, r
	}
	lefts[pathSize-1], rights[pathSize-1] = endPos, endPos

	pts := appendWaypoint(*waypoints, startPos)

	portalApex, portalLeft, portalRight := startPos, startPos, startPos
	apexIndex, leftIndex, rightIndex := 0, 0, 0

	for i := 0; i < pathSize; i++ {
		left, right := lefts[i], rights[i]

		// If starting really close the portal, advance.
		if i == 0 && i+1 < pathSize {
			if _, d := common.DistancePtSegSqr2D(portalApex, left, right); d < common.Sqr(float32(0.001)) {
				continue
			}
		}

		// Right vertex.
		if common.TriArea2D(portalApex, portalRight, right) <= 0.0 {
			if common.Vequal(portalApex, portalRight) || common.TriArea2D(portalApex, portalLeft, right) > 0.0 {
				portalRight = right
				rightIndex = i
			} else {
				// Right crossed over left: the left point becomes the new apex.
				portalApex = portalLeft
				apexIndex = leftIndex
				pts = appendWaypoint(pts, portalApex)

				portalLeft, portalRight = portalApex, portalApex
				leftIndex, rightIndex = apexIndex, apexIndex

				// Restart
				i = apexIndex
				continue
			}
		}

		// Left vertex.
		if common.TriArea2D(portalApex, portalLeft, left) >= 0.0 {
			if common.Vequal(portalApex, portalLeft) || common.TriArea2D(portalApex, portalRight, left) < 0.0 {
				portalLeft = left
				leftIndex = i
			} else {
				// Left crossed over right: the right point becomes the new apex.
				portalApex = portalRight
				apexIndex = rightIndex
				pts = appendWaypoint(pts, portalApex)

				portalLeft, portalRight = portalApex, portalApex
				leftIndex, rightIndex = apexIndex, apexIndex

				// Restart
				i = apexIndex
				continue
			}
		}
	}

	*waypoints = appendWaypoint(pts, endPos)
	return NAV_SUCCESS
}
