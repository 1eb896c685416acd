package monitor

import "time"

// Status is the last observed reachability of each dependency.
type Status struct {
	Storage   bool      `json:"storage"`
	Sessions  bool      `json:"sessions"`
	LastCheck time.Time `json:"last_check"`
}

func (s Status) Healthy() bool {
	return s.Storage && s.Sessions
}
