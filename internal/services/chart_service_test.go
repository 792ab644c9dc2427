package services_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartsSkipOnEmptySeries(t *testing.T) {
	charts := services.NewChartService(t.TempDir())

	tests := map[string]func() (string, error){
		"call result no data": func() (string, error) {
			return charts.CallResultChart(nil)
		},
		"daily volume single point": func() (string, error) {
			return charts.DailyVolumeChart([]services.DailyCount{{Date: time.Now(), Calls: 3}})
		},
		"abandonment all idle": func() (string, error) {
			return charts.AbandonmentTrendChart([]models.QueueInterval{{}, {}})
		},
		"hourly no trends": func() (string, error) {
			return charts.HourlyPatternsChart(nil)
		},
		"agents empty": func() (string, error) {
			return charts.AgentPerformanceChart(nil)
		},
	}

	for name, draw := range tests {
		t.Run(name, func(t *testing.T) {
			path, err := draw()
			require.NoError(t, err)
			assert.Empty(t, path)
		})
	}
}

func TestCallResultChartWritesFile(t *testing.T) {
	dir := t.TempDir()
	charts := services.NewChartService(dir)

	path, err := charts.CallResultChart([]services.ValueCount{
		{Value: "Answered", Count: 12},
		{Value: "Not Answered", Count: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, services.CallResultChartFile), path)
	assert.FileExists(t, path)
}
