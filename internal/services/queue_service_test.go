package services_test

import (
	"testing"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intervalAt(hour, answered, abandoned, overflowed int) models.QueueInterval {
	start := time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
	return models.QueueInterval{
		Start:      start,
		Date:       start.Format("2006-01-02"),
		Hour:       hour,
		Answered:   answered,
		Abandoned:  abandoned,
		Overflowed: overflowed,
	}
}

func TestQueueMetrics(t *testing.T) {
	intervals := []models.QueueInterval{
		intervalAt(9, 50, 10, 5),
		intervalAt(10, 30, 5, 0),
	}
	intervals[0].AvgWaitSec = 20
	intervals[0].MaxWaitSec = 120
	intervals[0].MinWaitSec = 2
	intervals[0].AvgHandleSec = 180
	intervals[1].AvgWaitSec = 40
	intervals[1].MaxWaitSec = 90
	intervals[1].MinWaitSec = 4
	intervals[1].AvgHandleSec = 240

	m := services.NewQueueService(testReportConfig()).Metrics(intervals)

	assert.Equal(t, 100, m.TotalOffered)
	assert.Equal(t, 80, m.TotalAnswered)
	assert.Equal(t, 15, m.TotalAbandoned)
	assert.Equal(t, 5, m.TotalOverflowed)

	assert.Equal(t, 80.0, m.AnswerRate.Value())
	assert.Equal(t, 15.0, m.AbandonmentRate.Value())
	assert.Equal(t, 5.0, m.OverflowRate.Value())
	assert.True(t, m.AnswerRate.Valid)

	assert.Equal(t, 30.0, m.AvgWaitSec.Value())
	assert.Equal(t, 120, m.MaxWaitSec.Value())
	assert.Equal(t, 2, m.MinWaitSec.Value())
	assert.Equal(t, 210.0, m.AvgHandleSec.Value())

	require.NotNil(t, m.PeakInterval)
	assert.Equal(t, 50, m.PeakInterval.Answered)
	assert.Equal(t, "2025-06-02 09:00:00", m.PeakInterval.Time)
	require.NotNil(t, m.WorstInterval)
	assert.Equal(t, 10, m.WorstInterval.Abandoned)
}

func TestQueueMetricsEmpty(t *testing.T) {
	m := services.NewQueueService(testReportConfig()).Metrics(nil)

	assert.Equal(t, 0, m.TotalOffered)
	assert.False(t, m.AnswerRate.Valid)
	assert.False(t, m.AvgWaitSec.Valid)
	assert.False(t, m.MaxWaitSec.Valid)
	assert.Nil(t, m.PeakInterval)
	assert.Nil(t, m.WorstInterval)
	assert.Equal(t, 0.0, m.AnswerRate.Value())
}

func TestHourlyTrends(t *testing.T) {
	intervals := []models.QueueInterval{
		intervalAt(9, 90, 10, 0),  // 10% abandonment
		intervalAt(10, 60, 40, 0), // 40% abandonment
		intervalAt(10, 0, 0, 0),   // merges into hour 10
		intervalAt(11, 0, 0, 0),   // zero offered, excluded
	}

	trends := services.NewQueueService(testReportConfig()).HourlyTrends(intervals)

	require.Len(t, trends, 2)
	assert.Equal(t, 10, trends[0].Hour)
	assert.Equal(t, 40.0, trends[0].AbandonmentRate)
	assert.Equal(t, 100, trends[0].Offered)
	assert.Equal(t, 9, trends[1].Hour)
	assert.Equal(t, 10.0, trends[1].AbandonmentRate)
}

func agentInterval(agent string, answered, totalSec, avgSec, maxSec int) models.AgentInterval {
	return models.AgentInterval{
		Agent:          agent,
		Answered:       answered,
		TotalHandleSec: totalSec,
		AvgHandleSec:   avgSec,
		MaxHandleSec:   maxSec,
	}
}

func TestAgentPerformance(t *testing.T) {
	intervals := []models.AgentInterval{
		agentInterval("Noa", 10, 1200, 120, 300),
		agentInterval("Noa", 10, 600, 60, 200),
		agentInterval("Avi", 15, 600, 30, 90),
	}

	agents := services.NewQueueService(testReportConfig()).AgentPerformance(intervals)

	require.Len(t, agents, 2)
	assert.Equal(t, "Noa", agents[0].Agent)
	assert.Equal(t, 20, agents[0].Answered)
	assert.Equal(t, 1800, agents[0].TotalHandleSec)
	assert.Equal(t, 90.0, agents[0].AvgHandleSec)
	assert.Equal(t, 300, agents[0].MaxHandleSec)
	// 20 answered over 30 handle minutes
	assert.Equal(t, 0.667, agents[0].Efficiency)

	assert.Equal(t, "Avi", agents[1].Agent)
	assert.Equal(t, 15, agents[1].Answered)
	// 15 answered over 10 handle minutes
	assert.Equal(t, 1.5, agents[1].Efficiency)
}

func TestAgentPerformanceTiesKeepNameOrder(t *testing.T) {
	intervals := []models.AgentInterval{
		agentInterval("Ziv", 5, 300, 60, 60),
		agentInterval("Ben", 5, 300, 60, 60),
	}

	agents := services.NewQueueService(testReportConfig()).AgentPerformance(intervals)

	require.Len(t, agents, 2)
	assert.Equal(t, "Ben", agents[0].Agent)
	assert.Equal(t, "Ziv", agents[1].Agent)
}

func TestAgentPerformanceEmpty(t *testing.T) {
	assert.Nil(t, services.NewQueueService(testReportConfig()).AgentPerformance(nil))
}

func TestTopVolumeAndMostEfficient(t *testing.T) {
	cfg := testReportConfig()
	cfg.TopAgents = 2
	svc := services.NewQueueService(cfg)

	agents := []models.AgentPerformance{
		{Agent: "A", Answered: 30, Efficiency: 0.5},
		{Agent: "B", Answered: 20, Efficiency: 2.0},
		{Agent: "C", Answered: 10, Efficiency: 1.0},
	}

	top := svc.TopVolume(agents)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Agent)
	assert.Equal(t, "B", top[1].Agent)

	efficient := svc.MostEfficient(agents)
	require.Len(t, efficient, 2)
	assert.Equal(t, "B", efficient[0].Agent)
	assert.Equal(t, "C", efficient[1].Agent)

	// MostEfficient works on a copy; the volume ordering is untouched.
	assert.Equal(t, "A", agents[0].Agent)
}
