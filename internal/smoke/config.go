// Package smoke drives a running teammate server end to end: it registers
// generated participants concurrently, forms teams and checks the result
// against the formation invariants.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL      string        // Base URL of the service
	Participants int           // Number of surveys to submit
	Workers      int           // Number of concurrent submitters
	Timeout      time.Duration // HTTP request timeout
	TeamSize     *int          // nil uses the server default
	ActivityCap  *int          // nil uses the server default
	Seed         int64         // Roster generator seed; 0 is random
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int
	Registered int
	Conflicts  int
	Failed     int

	RunID      string
	Teams      int
	Placed     int
	Unplaced   int
	Swaps      int
	Violations []string

	StartTime time.Time
	Duration  time.Duration
}

// OK reports whether the formation satisfied every checked invariant.
func (s *Stats) OK() bool {
	return len(s.Violations) == 0
}
