package models

// LongestCall identifies the single longest call of the run.
type LongestCall struct {
	Duration string `json:"duration"`
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
	Time     string `json:"time"`
}

// CallMetrics is the immutable KPI snapshot for a call report run.
type CallMetrics struct {
	Total             int          `json:"total"`
	Inbound           Count        `json:"inbound"`
	Outbound          Count        `json:"outbound"`
	AnsweredPct       Stat         `json:"answered_pct"`
	MissedPct         Stat         `json:"missed_pct"`
	VoicemailPct      Stat         `json:"vm_pct"`
	BlockedPct        Stat         `json:"blocked_pct"`
	AvgDurationSec    Stat         `json:"avg_duration_sec"`
	MedianDurationSec Stat         `json:"median_duration_sec"`
	TalkTimeSec       Stat         `json:"talk_time_sec"`
	Longest           *LongestCall `json:"longest"`
	PeakHour          Count        `json:"peak_hour"`
}

// OwnerTalk is one row of the top talk-time owners table.
type OwnerTalk struct {
	Owner    string `json:"owner"`
	TalkTime string `json:"talk_time"`
	TalkSec  int    `json:"talk_sec"`
}

// NumberCalls is one row of the top external inbound numbers table.
type NumberCalls struct {
	Number string `json:"from_number"`
	Calls  int    `json:"calls"`
}

// LocationCalls is one row of the top inbound locations table.
type LocationCalls struct {
	Location string `json:"location"`
	Calls    int    `json:"calls"`
}

// OwnerMissRate is one row of the high-miss owners table.
type OwnerMissRate struct {
	Owner     string  `json:"owner"`
	Total     int     `json:"total"`
	Missed    int     `json:"missed"`
	MissedPct float64 `json:"missed_pct"`
}

// DayMissRate is one row of the high-miss days table.
type DayMissRate struct {
	Date      string  `json:"date"`
	Total     int     `json:"total"`
	Missed    int     `json:"missed"`
	MissedPct float64 `json:"missed_pct"`
}

// CallReport is the JSON mirror of the call Markdown report.
type CallReport struct {
	ReportID     string            `json:"report_id"`
	GeneratedAt  string            `json:"generated_at"`
	Timezone     string            `json:"timezone"`
	Source       string            `json:"source"`
	KPI          CallMetrics       `json:"kpi"`
	TopTalk      []OwnerTalk       `json:"top_talk"`
	TopNumbers   []NumberCalls     `json:"top_numbers"`
	TopLocations []LocationCalls   `json:"top_locations"`
	MissByOwner  []OwnerMissRate   `json:"miss_by_owner"`
	MissDays     []DayMissRate     `json:"miss_days"`
	Charts       map[string]string `json:"charts"`
	Summary      string            `json:"summary"`
}

// IntervalRef points at a single queue interval in KPI output.
type IntervalRef struct {
	Time      string `json:"datetime"`
	Answered  int    `json:"answered_calls"`
	Abandoned int    `json:"abandoned_calls"`
}

// QueueMetrics is the immutable KPI snapshot for a queue report run.
type QueueMetrics struct {
	TotalOffered    int          `json:"total_offered"`
	TotalAnswered   int          `json:"total_answered"`
	TotalAbandoned  int          `json:"total_abandoned"`
	TotalOverflowed int          `json:"total_overflowed"`
	AnswerRate      Stat         `json:"answer_rate"`
	AbandonmentRate Stat         `json:"abandonment_rate"`
	OverflowRate    Stat         `json:"overflow_rate"`
	AvgWaitSec      Stat         `json:"avg_wait_time_sec"`
	MaxWaitSec      Count        `json:"max_wait_time_sec"`
	MinWaitSec      Count        `json:"min_wait_time_sec"`
	AvgHandleSec    Stat         `json:"avg_handle_time_sec"`
	PeakInterval    *IntervalRef `json:"peak_interval"`
	WorstInterval   *IntervalRef `json:"worst_abandon_interval"`
}

// HourlyTrend is one per-hour service-level row.
type HourlyTrend struct {
	Hour            int     `json:"hour"`
	Answered        int     `json:"answered_calls"`
	Abandoned       int     `json:"abandoned_calls"`
	Overflowed      int     `json:"overflowed_calls"`
	Offered         int     `json:"total_offered"`
	AbandonmentRate float64 `json:"abandonment_rate"`
}

// AgentPerformance is the per-agent summary across all intervals.
type AgentPerformance struct {
	Agent          string  `json:"agent"`
	Answered       int     `json:"answered_calls"`
	TotalHandleSec int     `json:"total_handle_sec"`
	AvgHandleSec   float64 `json:"avg_handle_sec"`
	MaxHandleSec   int     `json:"max_handle_sec"`
	Efficiency     float64 `json:"efficiency"`
}

// AgentReport groups the agent tables mirrored into JSON.
type AgentReport struct {
	AllAgents     []AgentPerformance `json:"all_agents"`
	TopVolume     []AgentPerformance `json:"top_volume"`
	MostEfficient []AgentPerformance `json:"most_efficient"`
}

// QueueReport is the JSON mirror of the queue Markdown report.
type QueueReport struct {
	ReportID      string            `json:"report_id"`
	GeneratedAt   string            `json:"generated_at"`
	Timezone      string            `json:"timezone"`
	QueueSource   string            `json:"queue_source"`
	AgentSource   string            `json:"agent_source,omitempty"`
	Metrics       QueueMetrics      `json:"queue_metrics"`
	ServiceTrends []HourlyTrend     `json:"service_trends"`
	Agents        *AgentReport      `json:"agent_performance,omitempty"`
	Charts        map[string]string `json:"charts"`
	Summary       string            `json:"summary"`
}
