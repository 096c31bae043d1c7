package pathfinder

import "fmt"

// Status is the lifecycle state of a Path.
type Status uint8

const (
	StatusNone Status = iota
	StatusComputing
	StatusSuccess
	StatusFailureNoPath
	StatusFailureInvalidArgs
	StatusCompleted
)

var statusNames = [...]string{
	StatusNone:               "None",
	StatusComputing:          "Computing",
	StatusSuccess:            "Success",
	StatusFailureNoPath:      "FailureNoPath",
	StatusFailureInvalidArgs: "FailureInvalidArgs",
	StatusCompleted:          "Completed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// statusTransitions lists the states reachable from each state. Reset
// returns any path to StatusNone and is not a transition.
var statusTransitions = [...][]Status{
	StatusNone:               {StatusComputing},
	StatusComputing:          {StatusSuccess, StatusFailureNoPath, StatusFailureInvalidArgs, StatusCompleted},
	StatusSuccess:            {StatusCompleted},
	StatusFailureNoPath:      nil,
	StatusFailureInvalidArgs: nil,
	StatusCompleted:          {StatusCompleted},
}

func (s Status) CanTransitionTo(next Status) bool {
	if int(s) >= len(statusTransitions) {
		return false
	}
	for _, to := range statusTransitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// Failed reports whether s is one of the failure states.
func (s Status) Failed() bool {
	return s == StatusFailureNoPath || s == StatusFailureInvalidArgs
}
