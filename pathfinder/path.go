package pathfinder

import (
	"github.com/gorustyt/fenav/common"
	"github.com/gorustyt/fenav/navmesh"
)

type Vec3 = common.Vec3

// Path is one agent's route. It is filled by Pathfinder.FindPath and then
// consumed tick by tick through GetNextPoint. A Path belongs to a single
// agent and is not safe for concurrent use.
type Path struct {
	waypoints []Vec3
	corridor  []navmesh.PolyRef
	status    Status
	detail    navmesh.NavStatus
	cursor    int

	startPos Vec3
	endPos   Vec3
	agentID  uint32
}

func NewPath() *Path {
	return &Path{}
}

// Reset discards the route and returns the path to StatusNone. Slices
// previously returned by Waypoints or Corridor must not be used after it.
func (p *Path) Reset() {
	p.waypoints = p.waypoints[:0]
	p.corridor = p.corridor[:0]
	p.status = StatusNone
	p.detail = 0
	p.cursor = 0
	p.startPos, p.endPos = Vec3{}, Vec3{}
	p.agentID = 0
}

func (p *Path) transition(next Status) bool {
	if !p.status.CanTransitionTo(next) {
		return false
	}
	p.status = next
	return true
}

func (p *Path) Status() Status              { return p.status }
func (p *Path) IsCompleted() bool           { return p.status == StatusCompleted }
func (p *Path) StartPos() Vec3              { return p.startPos }
func (p *Path) EndPos() Vec3                { return p.endPos }
func (p *Path) AgentID() uint32             { return p.agentID }
func (p *Path) Cursor() int                 { return p.cursor }
func (p *Path) Waypoints() []Vec3           { return p.waypoints }
func (p *Path) Corridor() []navmesh.PolyRef { return p.corridor }

// Detail is the navmesh status of the query that produced the path. It
// tells apart the causes folded into StatusFailureNoPath.
func (p *Path) Detail() navmesh.NavStatus { return p.detail }

// Remaining returns the waypoints not yet reached, current target first.
func (p *Path) Remaining() []Vec3 {
	if p.cursor >= len(p.waypoints) {
		return nil
	}
	return p.waypoints[p.cursor:]
}

// GetNextPoint returns the waypoint to steer toward from cur. Distances are
// measured on the xz-plane. When cur is within tolerance of the current
// target the cursor advances by one. Once the last waypoint is reached the
// path becomes StatusCompleted and no point is returned.
func (p *Path) GetNextPoint(cur Vec3, tolerance float32) (Vec3, bool) {
	if p.status != StatusSuccess && p.status != StatusComputing {
		return Vec3{}, false
	}
	if p.cursor >= len(p.waypoints) {
		p.transition(StatusCompleted)
		return Vec3{}, false
	}
	if common.Vdist2D(cur, p.waypoints[p.cursor]) <= tolerance {
		p.cursor++
		if p.cursor >= len(p.waypoints) {
			p.transition(StatusCompleted)
			return Vec3{}, false
		}
	}
	return p.waypoints[p.cursor], true
}

// NeedsReplan reports whether target has drifted more than threshold (xz)
// from the end the path was planned for, or no plan was ever requested.
func (p *Path) NeedsReplan(target Vec3, threshold float32) bool {
	if p.status == StatusNone {
		return true
	}
	return common.Vdist2D(target, p.endPos) > threshold
}
