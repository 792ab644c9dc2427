package services

import (
	"sort"
	"strings"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/config"
	"github.com/nycdan-n2p/call-intel-widget/internal/geo"
	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/utils"

	"github.com/montanaflynn/stats"
)

const unassignedOwner = "Unassigned"

// CallService computes aggregates over normalized call records. Every
// aggregate degrades to zero or empty on missing data; none of them
// return errors.
type CallService struct {
	cfg config.ReportConfig
}

// NewCallService creates a new call aggregation service
func NewCallService(cfg config.ReportConfig) *CallService {
	return &CallService{cfg: cfg}
}

// DailyCount is one day of the fixed volume window.
type DailyCount struct {
	Date  time.Time
	Calls int
}

// Aggregate computes the KPI snapshot for a call table.
func (s *CallService) Aggregate(t *models.CallTable) models.CallMetrics {
	m := models.CallMetrics{Total: len(t.Records)}

	if t.HasDirection {
		inbound := 0
		for _, r := range t.Records {
			if isInbound(r) {
				inbound++
			}
		}
		m.Inbound = models.CountOf(inbound)
		m.Outbound = models.CountOf(m.Total - inbound)
	}

	if t.HasResult {
		counts := map[string]int{}
		for _, r := range t.Records {
			counts[strings.ToLower(r.Result)]++
		}
		m.AnsweredPct = models.StatOf(utils.Pct(counts["answered"], m.Total))
		m.MissedPct = models.StatOf(utils.Pct(counts["not answered"], m.Total))
		m.VoicemailPct = models.StatOf(utils.Pct(counts["voicemail"], m.Total))
		m.BlockedPct = models.StatOf(utils.Pct(counts["blocked"], m.Total))
	}

	if m.Total > 0 {
		durations := make([]float64, 0, m.Total)
		longestIdx := 0
		for i, r := range t.Records {
			durations = append(durations, float64(r.DurationSec))
			if r.DurationSec > t.Records[longestIdx].DurationSec {
				longestIdx = i
			}
		}
		if mean, err := stats.Mean(durations); err == nil {
			m.AvgDurationSec = models.StatOf(utils.Round1(mean))
		}
		if median, err := stats.Median(durations); err == nil {
			m.MedianDurationSec = models.StatOf(utils.Round1(median))
		}
		if sum, err := stats.Sum(durations); err == nil {
			m.TalkTimeSec = models.StatOf(sum)
		}

		longest := t.Records[longestIdx]
		m.Longest = &models.LongestCall{
			Duration: utils.FormatHMS(longest.DurationSec),
			FromName: longest.FromName,
			ToName:   longest.ToName,
			Time:     longest.Time.Format("2006-01-02 15:04:05-07:00"),
		}
		m.PeakHour = s.peakHour(t)
	}

	return m
}

// peakHour is the hour with the most calls; the earliest hour wins ties.
func (s *CallService) peakHour(t *models.CallTable) models.Count {
	if len(t.Records) == 0 {
		return models.Count{}
	}
	byHour := map[int]int{}
	for _, r := range t.Records {
		byHour[r.Hour]++
	}
	best, bestCount := 0, -1
	for hour := 0; hour < 24; hour++ {
		if byHour[hour] > bestCount {
			best, bestCount = hour, byHour[hour]
		}
	}
	return models.CountOf(best)
}

// TopTalkTime groups calls by owner and ranks by summed duration,
// descending, taking the configured top N. Groups keep their
// first-appearance order under equal durations.
func (s *CallService) TopTalkTime(t *models.CallTable) []models.OwnerTalk {
	type bucket struct {
		owner string
		sec   int
	}
	order := []string{}
	bySec := map[string]int{}
	for _, r := range t.Records {
		owner := callOwner(r)
		if _, seen := bySec[owner]; !seen {
			order = append(order, owner)
		}
		bySec[owner] += r.DurationSec
	}

	buckets := make([]bucket, 0, len(order))
	for _, owner := range order {
		buckets = append(buckets, bucket{owner: owner, sec: bySec[owner]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].sec > buckets[j].sec
	})

	top := make([]models.OwnerTalk, 0, s.cfg.TopOwners)
	for _, b := range buckets {
		if len(top) >= s.cfg.TopOwners {
			break
		}
		top = append(top, models.OwnerTalk{
			Owner:    b.owner,
			TalkTime: utils.FormatHMS(b.sec),
			TalkSec:  b.sec,
		})
	}
	return top
}

// TopInboundNumbers ranks calling numbers by call count over the
// inbound subset, or over all rows when nothing is inbound.
func (s *CallService) TopInboundNumbers(t *models.CallTable) []models.NumberCalls {
	rows := inboundSubset(t)

	order := []string{}
	counts := map[string]int{}
	for _, r := range rows {
		if r.FromNumber == "" {
			continue
		}
		if _, seen := counts[r.FromNumber]; !seen {
			order = append(order, r.FromNumber)
		}
		counts[r.FromNumber]++
	}

	ranked := make([]models.NumberCalls, 0, len(order))
	for _, num := range order {
		ranked = append(ranked, models.NumberCalls{Number: num, Calls: counts[num]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Calls > ranked[j].Calls
	})

	if len(ranked) > s.cfg.TopNumbers {
		ranked = ranked[:s.cfg.TopNumbers]
	}
	return ranked
}

// TopInboundLocations ranks derived caller locations by call count over
// the inbound subset. Rows with no resolvable location are excluded.
func (s *CallService) TopInboundLocations(t *models.CallTable) []models.LocationCalls {
	rows := inboundSubset(t)

	order := []string{}
	counts := map[string]int{}
	for _, r := range rows {
		loc := geo.RowLocation(r.FromName, r.FromNumber)
		if loc == "" {
			continue
		}
		if _, seen := counts[loc]; !seen {
			order = append(order, loc)
		}
		counts[loc]++
	}

	ranked := make([]models.LocationCalls, 0, len(order))
	for _, loc := range order {
		ranked = append(ranked, models.LocationCalls{Location: loc, Calls: counts[loc]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Calls > ranked[j].Calls
	})

	if len(ranked) > s.cfg.TopLocations {
		ranked = ranked[:s.cfg.TopLocations]
	}
	return ranked
}

// HighMissOwners returns owners whose missed rate strictly exceeds the
// configured threshold, sorted by owner name. Empty when the result
// column is missing.
func (s *CallService) HighMissOwners(t *models.CallTable) []models.OwnerMissRate {
	// Non-nil so the JSON mirror always carries an array.
	flagged := []models.OwnerMissRate{}
	if !t.HasResult {
		return flagged
	}
	type tally struct{ total, missed int }
	byOwner := map[string]*tally{}
	for _, r := range t.Records {
		owner := callOwner(r)
		tl, ok := byOwner[owner]
		if !ok {
			tl = &tally{}
			byOwner[owner] = tl
		}
		tl.total++
		if isMissed(r) {
			tl.missed++
		}
	}

	for owner, tl := range byOwner {
		pct := utils.Pct(tl.missed, tl.total)
		if pct > s.cfg.MissOwnerThreshold {
			flagged = append(flagged, models.OwnerMissRate{
				Owner:     owner,
				Total:     tl.total,
				Missed:    tl.missed,
				MissedPct: pct,
			})
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].Owner < flagged[j].Owner
	})
	return flagged
}

// HighMissDays returns calendar days whose missed rate strictly exceeds
// the configured threshold, sorted by date.
func (s *CallService) HighMissDays(t *models.CallTable) []models.DayMissRate {
	flagged := []models.DayMissRate{}
	if !t.HasResult {
		return flagged
	}
	type tally struct{ total, missed int }
	byDay := map[string]*tally{}
	for _, r := range t.Records {
		tl, ok := byDay[r.Date]
		if !ok {
			tl = &tally{}
			byDay[r.Date] = tl
		}
		tl.total++
		if isMissed(r) {
			tl.missed++
		}
	}

	for date, tl := range byDay {
		pct := utils.Pct(tl.missed, tl.total)
		if pct > s.cfg.MissDayThreshold {
			flagged = append(flagged, models.DayMissRate{
				Date:      date,
				Total:     tl.total,
				Missed:    tl.missed,
				MissedPct: pct,
			})
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].Date < flagged[j].Date
	})
	return flagged
}

// DailyVolume returns calls per day over the fixed window ending at
// asOf, zero-filled for silent days.
func (s *CallService) DailyVolume(t *models.CallTable, asOf time.Time) []DailyCount {
	byDate := map[string]int{}
	for _, r := range t.Records {
		byDate[r.Date]++
	}

	days := s.cfg.VolumeWindowDays
	window := make([]DailyCount, 0, days)
	start := asOf.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		window = append(window, DailyCount{
			Date:  day,
			Calls: byDate[day.Format("2006-01-02")],
		})
	}
	return window
}

// ValueCount pairs a categorical value with its row count.
type ValueCount struct {
	Value string
	Count int
}

// ResultCounts returns call-result values with their counts, descending
// by count, preserving original casing. Nil when the result column is
// missing.
func (s *CallService) ResultCounts(t *models.CallTable) []ValueCount {
	if !t.HasResult {
		return nil
	}
	order := []string{}
	counts := map[string]int{}
	for _, r := range t.Records {
		if _, seen := counts[r.Result]; !seen {
			order = append(order, r.Result)
		}
		counts[r.Result]++
	}
	ranked := make([]ValueCount, 0, len(order))
	for _, result := range order {
		ranked = append(ranked, ValueCount{Value: result, Count: counts[result]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// callOwner attributes a call to its routing destination, falling back
// to the counterpart name and then to an explicit unassigned bucket.
func callOwner(r models.CallRecord) string {
	if r.Via != "" {
		return r.Via
	}
	if r.ToName != "" {
		return r.ToName
	}
	return unassignedOwner
}

func isInbound(r models.CallRecord) bool {
	return strings.HasPrefix(strings.ToLower(r.Direction), "in")
}

func isMissed(r models.CallRecord) bool {
	return strings.ToLower(r.Result) == "not answered"
}

// inboundSubset restricts to inbound rows when any exist, otherwise
// keeps every row so the tables still render for outbound-only exports.
func inboundSubset(t *models.CallTable) []models.CallRecord {
	if !t.HasDirection {
		return t.Records
	}
	var inbound []models.CallRecord
	for _, r := range t.Records {
		if isInbound(r) {
			inbound = append(inbound, r)
		}
	}
	if len(inbound) == 0 {
		return t.Records
	}
	return inbound
}
