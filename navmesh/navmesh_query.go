package navmesh

import (
	"slices"

	"github.com/gorustyt/fenav/common"
	"go.uber.org/zap"
)

// checkQueryable verifies the mesh may be queried.
func (m *NavMesh) checkQueryable() NavStatus {
	if !m.connected {
		m.log.Warn("navmesh queried before BuildConnections",
			zap.Int("polys", len(m.polys)))
		return NAV_FAILURE | NAV_INVALID_PARAM | NAV_NOT_CONNECTED
	}
	return NAV_SUCCESS
}

// FindPath finds the cheapest polygon corridor from the polygon containing
// startPos to the polygon containing endPos. The corridor is written to
// path, which is cleared first.
//
// Nodes are polygons positioned at their centroids. Edge cost and
// heuristic are both straight centroid distances. The heuristic is only a
// lower bound of the true walking distance for well-shaped meshes.
func (m *NavMesh) FindPath(startPos, endPos Vec3, path *[]PolyRef) NavStatus {
	if path == nil {
		m.log.Warn("FindPath called without output corridor")
		return NAV_FAILURE | NAV_INVALID_PARAM
	}
	*path = (*path)[:0]
	if status := m.checkQueryable(); status.Failed() {
		return status
	}
	if !common.Visfinite(startPos) || !common.Visfinite(endPos) {
		m.log.Warn("FindPath with non-finite position",
			zap.Any("start", startPos), zap.Any("end", endPos))
		return NAV_FAILURE | NAV_INVALID_PARAM
	}

	startRef, status := m.FindPolygonForPoint(startPos)
	if status.Failed() {
		return NAV_FAILURE | NAV_NO_PATH
	}
	endRef, status := m.FindPolygonForPoint(endPos)
	if status.Failed() {
		return NAV_FAILURE | NAV_NO_PATH
	}

	if startRef == endRef {
		*path = append(*path, startRef)
		return NAV_SUCCESS
	}
	return m.FindPathBetween(startRef, endRef, path)
}

// FindPathBetween runs A* between two known polygons.
func (m *NavMesh) FindPathBetween(startRef, endRef PolyRef, path *[]PolyRef) NavStatus {
	if path == nil || !m.IsValidPolyRef(startRef) || !m.IsValidPolyRef(endRef) {
		m.log.Warn("FindPathBetween with invalid arguments",
			zap.Int32("start", int32(startRef)), zap.Int32("end", int32(endRef)))
		return NAV_FAILURE | NAV_INVALID_PARAM
	}
	*path = (*path)[:0]
	if status := m.checkQueryable(); status.Failed() {
		return status
	}
	if startRef == endRef {
		*path = append(*path, startRef)
		return NAV_SUCCESS
	}

	ws := m.ws
	ws.Resize(len(m.polys))
	ws.Reset()

	goal := m.polys[endRef]
	startNode := ws.Node(startRef)
	startNode.G = 0
	startNode.H = common.Vdist(m.polys[startRef].Centroid, goal.Centroid)
	startNode.F = startNode.H
	startNode.Flags = NODE_OPEN
	ws.open.Offer(startNode)

	for !ws.open.Empty() {
		// Remove node from open list and put it in closed list.
		bestNode := ws.open.Poll()
		bestNode.Flags &^= NODE_OPEN
		bestNode.Flags |= NODE_CLOSED

		// Reached the goal, stop searching.
		if bestNode.Id == endRef {
			m.getPathToNode(bestNode, path)
			return NAV_SUCCESS
		}

		bestPoly := m.polys[bestNode.Id]
		for _, link := range bestPoly.Neighbors {
			neighbourNode := ws.Node(link.Ref)
			if neighbourNode == nil || neighbourNode.IsClosed() {
				continue
			}
			neighbourPoly := m.polys[link.Ref]
			cost := bestNode.G + common.Vdist(bestPoly.Centroid, neighbourPoly.Centroid)

			// The node is already in open list and the new result is worse, skip.
			if neighbourNode.IsOpen() && cost >= neighbourNode.G {
				continue
			}

			neighbourNode.Parent = bestNode.Id
			neighbourNode.G = cost
			neighbourNode.H = common.Vdist(neighbourPoly.Centroid, goal.Centroid)
			neighbourNode.F = cost + neighbourNode.H

			if neighbourNode.IsOpen() {
				// Already in open, update node location.
				ws.open.Update(neighbourNode)
			} else {
				neighbourNode.Flags |= NODE_OPEN
				ws.open.Offer(neighbourNode)
			}
		}
	}

	m.log.Debug("open list exhausted before reaching goal",
		zap.Int32("start", int32(startRef)), zap.Int32("end", int32(endRef)))
	return NAV_FAILURE | NAV_NO_PATH
}

// getPathToNode walks parent links back to the start and writes the
// corridor in start to end order.
func (m *NavMesh) getPathToNode(endNode *SearchNode, path *[]PolyRef) {
	for cur := endNode; cur != nil; cur = m.ws.Node(cur.Parent) {
		*path = append(*path, cur.Id)
		if len(*path) > len(m.polys) {
			break
		}
	}
	slices.Reverse(*path)
}
