package navmesh

import "strings"

type NavStatus uint32

const (
	// High level status.
	NAV_FAILURE     NavStatus = 1 << 31 // Operation failed.
	NAV_SUCCESS     NavStatus = 1 << 30 // Operation succeed.
	NAV_IN_PROGRESS NavStatus = 1 << 29 // Operation still in progress.

	// Detail information for status.
	NAV_STATUS_DETAIL_MASK NavStatus = 0x0ffffff
	NAV_INVALID_PARAM      NavStatus = 1 << 0 // An input parameter was invalid.
	NAV_NO_PATH            NavStatus = 1 << 1 // A point is off the mesh or the goal is unreachable.
	NAV_OUT_OF_MEMORY      NavStatus = 1 << 2 // A pool reached its configured capacity.
	NAV_BAD_CORRIDOR       NavStatus = 1 << 3 // Two consecutive corridor polygons share no edge.
	NAV_NOT_CONNECTED      NavStatus = 1 << 4 // BuildConnections has not run since the last edit.
)

// Returns true of status is success.
func (status NavStatus) Succeed() bool {
	return (status & NAV_SUCCESS) != 0
}

// Returns true of status is failure.
func (status NavStatus) Failed() bool {
	return (status & NAV_FAILURE) != 0
}

// Returns true of status is in progress.
func (status NavStatus) InProgress() bool {
	return (status & NAV_IN_PROGRESS) != 0
}

// Returns true if specific detail is set.
func (status NavStatus) Detail(detail NavStatus) bool {
	return (status & detail & NAV_STATUS_DETAIL_MASK) != 0
}

var statusNames = []struct {
	bit  NavStatus
	name string
}{
	{NAV_FAILURE, "failure"},
	{NAV_SUCCESS, "success"},
	{NAV_IN_PROGRESS, "in_progress"},
	{NAV_INVALID_PARAM, "invalid_param"},
	{NAV_NO_PATH, "no_path"},
	{NAV_OUT_OF_MEMORY, "out_of_memory"},
	{NAV_BAD_CORRIDOR, "bad_corridor"},
	{NAV_NOT_CONNECTED, "not_connected"},
}

func (status NavStatus) String() string {
	var parts []string
	for _, s := range statusNames {
		if status&s.bit != 0 {
			parts = append(parts, s.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
