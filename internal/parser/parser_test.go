package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jerusalem(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return loc
}

func TestParseCalls(t *testing.T) {
	loc := jerusalem(t)
	input := strings.TrimSpace(`
Direction,Call Result,From Name,From Number,Via,To Name,To Number,Duration (sec),Time
Inbound,Answered,"Tel Aviv, IL",+97235550100,Sales Queue,Dana,+97235550199,0:01:40,2025-06-12 06:30:00
Outbound,Not Answered,Dana,,,"Acme Corp",+12125550123,95,2025-06-12 07:15:00
Inbound,Answered,Noa,+97235550101,,,,"bad",2025-06-12 08:00:00
Inbound,Answered,Noa,+97235550101,,,,"0:00:30",not-a-time
`)

	table, err := parser.ParseCalls(strings.NewReader(input), loc)
	require.NoError(t, err)

	assert.True(t, table.HasDirection)
	assert.True(t, table.HasResult)
	assert.Len(t, table.Records, 3)
	assert.Equal(t, 1, table.Dropped)

	first := table.Records[0]
	assert.Equal(t, "Inbound", first.Direction)
	assert.Equal(t, "Answered", first.Result)
	assert.Equal(t, "Tel Aviv, IL", first.FromName)
	assert.Equal(t, "Sales Queue", first.Via)
	assert.Equal(t, 100, first.DurationSec)
	// 06:30 UTC is 09:30 in Jerusalem during DST.
	assert.Equal(t, 9, first.Hour)
	assert.Equal(t, "2025-06-12", first.Date)

	// Unparseable duration degrades to zero, row is kept.
	assert.Equal(t, 0, table.Records[2].DurationSec)
}

func TestParseCallsMissingColumns(t *testing.T) {
	loc := jerusalem(t)
	input := strings.TrimSpace(`
From Name,Duration,Time
Dana,0:00:10,2025-06-12 06:30:00
Noa,0:00:20,2025-06-12 07:30:00
`)

	table, err := parser.ParseCalls(strings.NewReader(input), loc)
	require.NoError(t, err)

	assert.False(t, table.HasDirection)
	assert.False(t, table.HasResult)
	require.Len(t, table.Records, 2)
	assert.Empty(t, table.Records[0].Direction)
	assert.Empty(t, table.Records[0].Result)
}

func TestParseCallsEmptyInput(t *testing.T) {
	table, err := parser.ParseCalls(strings.NewReader(""), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, table.Records)
}

func TestParseIntervalStart(t *testing.T) {
	loc := jerusalem(t)

	tests := map[string]struct {
		date     string
		interval string
		ok       bool
		expected time.Time
	}{
		"Padded":    {date: "06.12.2025", interval: "09:00 - 09:30", ok: true, expected: time.Date(2025, 6, 12, 9, 0, 0, 0, loc)},
		"Unpadded":  {date: "6.2.2025", interval: "14:30 - 15:00", ok: true, expected: time.Date(2025, 6, 2, 14, 30, 0, 0, loc)},
		"BadDate":   {date: "June 12", interval: "09:00 - 09:30", ok: false},
		"BadStart":  {date: "06.12.2025", interval: "late - later", ok: false},
		"EmptyBoth": {date: "", interval: "", ok: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := parser.ParseIntervalStart(tt.date, tt.interval, loc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.expected), "got %v want %v", got, tt.expected)
			}
		})
	}
}

func TestParseQueueIntervals(t *testing.T) {
	loc := jerusalem(t)
	asOf := time.Date(2025, 6, 12, 12, 0, 0, 0, loc)
	input := strings.TrimSpace(`
DATE,INTERVAL,ANSWERED CALLS,ABANDONED CALLS,OVERFLOWED CALLS,AVERAGE WAIT TIME,MAXIMUM WAIT TIME,MINIMUM WAIT TIME,AVERAGE HANDLE TIME
06.12.2025,09:00 - 09:30,80,15,5,00:45,02:30,00:05,03:20
06.12.2025,bad interval,1,0,0,00:10,00:10,00:10,00:30
`)

	intervals, err := parser.ParseQueueIntervals(strings.NewReader(input), loc, asOf)
	require.NoError(t, err)
	require.Len(t, intervals, 1)

	iv := intervals[0]
	assert.Equal(t, 80, iv.Answered)
	assert.Equal(t, 15, iv.Abandoned)
	assert.Equal(t, 5, iv.Overflowed)
	assert.Equal(t, 100, iv.Offered())
	assert.Equal(t, 45, iv.AvgWaitSec)
	assert.Equal(t, 150, iv.MaxWaitSec)
	assert.Equal(t, 5, iv.MinWaitSec)
	assert.Equal(t, 200, iv.AvgHandleSec)
	assert.Equal(t, 9, iv.Hour)
}

func TestParseQueueIntervalsMissingDateColumns(t *testing.T) {
	loc := jerusalem(t)
	asOf := time.Date(2025, 6, 12, 12, 0, 0, 0, loc)
	input := strings.TrimSpace(`
ANSWERED CALLS,ABANDONED CALLS,OVERFLOWED CALLS
3,1,0
`)

	intervals, err := parser.ParseQueueIntervals(strings.NewReader(input), loc, asOf)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.True(t, intervals[0].Start.Equal(asOf))
	assert.Equal(t, 3, intervals[0].Answered)
}

func TestParseAgentIntervals(t *testing.T) {
	loc := jerusalem(t)
	asOf := time.Date(2025, 6, 12, 12, 0, 0, 0, loc)
	input := strings.TrimSpace(`
DATE,INTERVAL,AGENT,ANSWERED CALLS,TOTAL HANDLE TIME,AVERAGE HANDLE TIME,MAXIMUM HANDLE TIME,MINIMUM HANDLE TIME
06.12.2025,09:00 - 09:30,Dana,12,36:00,03:00,08:00,00:30
06.12.2025,09:30 - 10:00,Noa,8,20:00,02:30,05:00,01:00
`)

	agents, err := parser.ParseAgentIntervals(strings.NewReader(input), loc, asOf)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "Dana", agents[0].Agent)
	assert.Equal(t, 12, agents[0].Answered)
	assert.Equal(t, 2160, agents[0].TotalHandleSec)
	assert.Equal(t, 180, agents[0].AvgHandleSec)
}
