// Package pathfinder turns start/end positions into steerable paths by
// chaining a corridor search and string pulling on a navmesh.
package pathfinder

import (
	"github.com/gorustyt/fenav/common/logger"
	"github.com/gorustyt/fenav/navmesh"
	"go.uber.org/zap"
)

const (
	DefaultWaypointTolerance float32 = 0.1
	DefaultReplanDistance    float32 = 1.0
)

// Pathfinder holds a non-owning reference to a mesh. It shares the mesh's
// search workspace, so one Pathfinder per mesh may run at a time.
type Pathfinder struct {
	mesh     *navmesh.NavMesh
	corridor []navmesh.PolyRef

	tolerance      float32
	replanDistance float32
	log            *zap.Logger
}

type Option func(pf *Pathfinder)

func WithLogger(l *zap.Logger) Option {
	return func(pf *Pathfinder) {
		if l != nil {
			pf.log = l
		}
	}
}

// WithTolerance sets the waypoint arrival radius used by Follow.
func WithTolerance(tolerance float32) Option {
	return func(pf *Pathfinder) {
		if tolerance > 0 {
			pf.tolerance = tolerance
		}
	}
}

func WithReplanDistance(d float32) Option {
	return func(pf *Pathfinder) {
		if d > 0 {
			pf.replanDistance = d
		}
	}
}

func New(mesh *navmesh.NavMesh, opts ...Option) *Pathfinder {
	pf := &Pathfinder{
		mesh:           mesh,
		tolerance:      DefaultWaypointTolerance,
		replanDistance: DefaultReplanDistance,
		log:            logger.L().Named("pathfinder"),
	}
	for _, opt := range opts {
		opt(pf)
	}
	return pf
}

func (pf *Pathfinder) Mesh() *navmesh.NavMesh { return pf.mesh }

// FollowTolerance is the arrival radius Follow passes to GetNextPoint.
func (pf *Pathfinder) FollowTolerance() float32 { return pf.tolerance }

func (pf *Pathfinder) ReplanDistance() float32 { return pf.replanDistance }

// FindPath plans a route from start to end for agentID into out. out is
// reset first and records start, end and agent whatever the outcome. The
// returned status is the one stored in out.
func (pf *Pathfinder) FindPath(start, end Vec3, agentID uint32, out *Path) Status {
	if out == nil {
		pf.log.Warn("FindPath called without output path", zap.Uint32("agent", agentID))
		return StatusFailureInvalidArgs
	}
	out.Reset()
	out.startPos, out.endPos, out.agentID = start, end, agentID
	out.transition(StatusComputing)

	if pf.mesh == nil {
		pf.log.Warn("FindPath without navmesh", zap.Uint32("agent", agentID))
		return pf.fail(out, navmesh.NAV_FAILURE|navmesh.NAV_INVALID_PARAM)
	}

	status := pf.mesh.FindPath(start, end, &pf.corridor)
	if status.Failed() {
		return pf.fail(out, status)
	}
	status = pf.mesh.SmoothPath(pf.corridor, start, end, &out.waypoints)
	if status.Failed() {
		return pf.fail(out, status)
	}

	out.corridor = append(out.corridor, pf.corridor...)
	out.detail = status
	out.transition(StatusSuccess)
	pf.log.Debug("path found",
		zap.Uint32("agent", agentID),
		zap.Int("polys", len(out.corridor)),
		zap.Int("waypoints", len(out.waypoints)))
	return out.status
}

// fail maps a navmesh failure onto out. Bad arguments, including an
// unconnected mesh, become StatusFailureInvalidArgs; every other cause
// becomes StatusFailureNoPath.
func (pf *Pathfinder) fail(out *Path, status navmesh.NavStatus) Status {
	out.waypoints = out.waypoints[:0]
	out.corridor = out.corridor[:0]
	out.detail = status
	next := StatusFailureNoPath
	if status.Detail(navmesh.NAV_INVALID_PARAM) {
		next = StatusFailureInvalidArgs
	}
	out.transition(next)
	pf.log.Debug("path not found",
		zap.Uint32("agent", out.agentID),
		zap.Stringer("status", status),
		zap.Stringer("result", next))
	return out.status
}

// Follow advances p from cur using the configured tolerance.
func (pf *Pathfinder) Follow(p *Path, cur Vec3) (Vec3, bool) {
	return p.GetNextPoint(cur, pf.tolerance)
}

// NeedsReplan reports whether p should be planned again for target using
// the configured replan distance.
func (pf *Pathfinder) NeedsReplan(p *Path, target Vec3) bool {
	return p.NeedsReplan(target, pf.replanDistance)
}
