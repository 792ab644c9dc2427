package models

import "time"

// CallRecord is one normalized row of a call-history export. Time is in
// the configured report timezone; Date and Hour are derived from it.
type CallRecord struct {
	Direction   string
	Result      string
	FromName    string
	FromNumber  string
	Via         string
	ToName      string
	ToNumber    string
	DurationSec int
	Time        time.Time
	Date        string
	Hour        int
}

// CallTable holds normalized call records plus column presence, which
// aggregates use to tell a missing column from an all-empty one.
type CallTable struct {
	Records      []CallRecord
	HasDirection bool
	HasResult    bool
	Dropped      int
}

// QueueInterval is one normalized queue summary time-bucket.
type QueueInterval struct {
	Start        time.Time
	Date         string
	Hour         int
	Answered     int
	Abandoned    int
	Overflowed   int
	AvgWaitSec   int
	MaxWaitSec   int
	MinWaitSec   int
	AvgHandleSec int
}

// Offered is the number of calls that arrived at the queue in this
// interval: answered + abandoned + overflowed.
func (q QueueInterval) Offered() int {
	return q.Answered + q.Abandoned + q.Overflowed
}

// AgentInterval is one normalized agent summary time-bucket.
type AgentInterval struct {
	Agent          string
	Start          time.Time
	Answered       int
	TotalHandleSec int
	AvgHandleSec   int
	MaxHandleSec   int
	MinHandleSec   int
}
