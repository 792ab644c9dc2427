package services

import (
	"sort"

	"github.com/nycdan-n2p/call-intel-widget/internal/config"
	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/utils"

	"github.com/montanaflynn/stats"
)

// QueueService computes queue and agent performance aggregates. Like
// the call side, everything degrades to zero or empty instead of
// returning errors, so a report renders even for an empty export.
type QueueService struct {
	cfg config.ReportConfig
}

// NewQueueService creates a new queue analytics service
func NewQueueService(cfg config.ReportConfig) *QueueService {
	return &QueueService{cfg: cfg}
}

// Metrics computes the queue KPI snapshot.
func (s *QueueService) Metrics(intervals []models.QueueInterval) models.QueueMetrics {
	var m models.QueueMetrics
	for _, iv := range intervals {
		m.TotalAnswered += iv.Answered
		m.TotalAbandoned += iv.Abandoned
		m.TotalOverflowed += iv.Overflowed
	}
	m.TotalOffered = m.TotalAnswered + m.TotalAbandoned + m.TotalOverflowed

	if len(intervals) > 0 {
		m.AnswerRate = models.StatOf(offeredRate(m.TotalAnswered, m.TotalOffered))
		m.AbandonmentRate = models.StatOf(offeredRate(m.TotalAbandoned, m.TotalOffered))
		m.OverflowRate = models.StatOf(offeredRate(m.TotalOverflowed, m.TotalOffered))

		avgWait := make([]float64, 0, len(intervals))
		maxWait := make([]float64, 0, len(intervals))
		minWait := make([]float64, 0, len(intervals))
		avgHandle := make([]float64, 0, len(intervals))
		for _, iv := range intervals {
			avgWait = append(avgWait, float64(iv.AvgWaitSec))
			maxWait = append(maxWait, float64(iv.MaxWaitSec))
			minWait = append(minWait, float64(iv.MinWaitSec))
			avgHandle = append(avgHandle, float64(iv.AvgHandleSec))
		}
		if mean, err := stats.Mean(avgWait); err == nil {
			m.AvgWaitSec = models.StatOf(utils.Round1(mean))
		}
		if max, err := stats.Max(maxWait); err == nil {
			m.MaxWaitSec = models.CountOf(int(max))
		}
		if min, err := stats.Min(minWait); err == nil {
			m.MinWaitSec = models.CountOf(int(min))
		}
		if mean, err := stats.Mean(avgHandle); err == nil {
			m.AvgHandleSec = models.StatOf(utils.Round1(mean))
		}

		peak, worst := 0, 0
		for i, iv := range intervals {
			if iv.Answered > intervals[peak].Answered {
				peak = i
			}
			if iv.Abandoned > intervals[worst].Abandoned {
				worst = i
			}
		}
		m.PeakInterval = intervalRef(intervals[peak])
		m.WorstInterval = intervalRef(intervals[worst])
	}

	return m
}

// HourlyTrends groups intervals by hour, keeps hours with offered
// calls, and orders them by abandonment rate descending. Equal rates
// keep hour order.
func (s *QueueService) HourlyTrends(intervals []models.QueueInterval) []models.HourlyTrend {
	byHour := map[int]*models.HourlyTrend{}
	for _, iv := range intervals {
		t, ok := byHour[iv.Hour]
		if !ok {
			t = &models.HourlyTrend{Hour: iv.Hour}
			byHour[iv.Hour] = t
		}
		t.Answered += iv.Answered
		t.Abandoned += iv.Abandoned
		t.Overflowed += iv.Overflowed
	}

	trends := make([]models.HourlyTrend, 0, len(byHour))
	for hour := 0; hour < 24; hour++ {
		t, ok := byHour[hour]
		if !ok {
			continue
		}
		t.Offered = t.Answered + t.Abandoned + t.Overflowed
		if t.Offered == 0 {
			continue
		}
		t.AbandonmentRate = offeredRate(t.Abandoned, t.Offered)
		trends = append(trends, *t)
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].AbandonmentRate > trends[j].AbandonmentRate
	})
	return trends
}

// AgentPerformance sums each agent's intervals and orders agents by
// answered calls descending. Agents are grouped by ascending name
// first, so equal volumes keep a deterministic order.
func (s *QueueService) AgentPerformance(intervals []models.AgentInterval) []models.AgentPerformance {
	if len(intervals) == 0 {
		return nil
	}

	type tally struct {
		answered int
		totalSec int
		avgSecs  []float64
		maxSec   int
	}
	byAgent := map[string]*tally{}
	for _, iv := range intervals {
		tl, ok := byAgent[iv.Agent]
		if !ok {
			tl = &tally{}
			byAgent[iv.Agent] = tl
		}
		tl.answered += iv.Answered
		tl.totalSec += iv.TotalHandleSec
		tl.avgSecs = append(tl.avgSecs, float64(iv.AvgHandleSec))
		if iv.MaxHandleSec > tl.maxSec {
			tl.maxSec = iv.MaxHandleSec
		}
	}

	names := make([]string, 0, len(byAgent))
	for name := range byAgent {
		names = append(names, name)
	}
	sort.Strings(names)

	agents := make([]models.AgentPerformance, 0, len(names))
	for _, name := range names {
		tl := byAgent[name]
		avg := 0.0
		if mean, err := stats.Mean(tl.avgSecs); err == nil {
			avg = utils.Round1(mean)
		}
		agents = append(agents, models.AgentPerformance{
			Agent:          name,
			Answered:       tl.answered,
			TotalHandleSec: tl.totalSec,
			AvgHandleSec:   avg,
			MaxHandleSec:   tl.maxSec,
			Efficiency:     efficiency(tl.answered, tl.totalSec),
		})
	}

	sort.SliceStable(agents, func(i, j int) bool {
		return agents[i].Answered > agents[j].Answered
	})
	return agents
}

// TopVolume returns the configured top agents by answered calls.
func (s *QueueService) TopVolume(agents []models.AgentPerformance) []models.AgentPerformance {
	if len(agents) > s.cfg.TopAgents {
		return agents[:s.cfg.TopAgents]
	}
	return agents
}

// MostEfficient returns the configured top agents by answered calls per
// minute of handle time.
func (s *QueueService) MostEfficient(agents []models.AgentPerformance) []models.AgentPerformance {
	ranked := make([]models.AgentPerformance, len(agents))
	copy(ranked, agents)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Efficiency > ranked[j].Efficiency
	})
	if len(ranked) > s.cfg.TopAgents {
		ranked = ranked[:s.cfg.TopAgents]
	}
	return ranked
}

// efficiency is answered calls per minute of handle time, rounded to
// three decimals; zero handle time yields 0.
func efficiency(answered, totalHandleSec int) float64 {
	if totalHandleSec == 0 {
		return 0
	}
	return utils.Round3(float64(answered) / (float64(totalHandleSec) / 60))
}

// offeredRate is part as a percentage of offered calls, rounded to two
// decimals; zero offered yields 0.
func offeredRate(part, offered int) float64 {
	if offered == 0 {
		return 0
	}
	return utils.Round2(100 * float64(part) / float64(offered))
}

func intervalRef(iv models.QueueInterval) *models.IntervalRef {
	return &models.IntervalRef{
		Time:      iv.Start.Format("2006-01-02 15:04:05"),
		Answered:  iv.Answered,
		Abandoned: iv.Abandoned,
	}
}
