package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/utils"
	"github.com/nycdan-n2p/call-intel-widget/internal/validation"

	"github.com/rs/zerolog/log"
)

// ReportService assembles Markdown reports and their JSON mirrors.
type ReportService struct{}

// NewReportService creates a new report assembly service
func NewReportService() *ReportService {
	return &ReportService{}
}

// CallKPITable renders the call KPI table as GitHub Markdown.
func (s *ReportService) CallKPITable(m models.CallMetrics) string {
	return MarkdownTable([]string{"Metric", "Value"}, s.callKPIRows(m))
}

func (s *ReportService) callKPIRows(m models.CallMetrics) [][]string {
	longest := "N/A"
	if m.Longest != nil {
		longest = fmt.Sprintf("%s (%s → %s on %s)",
			m.Longest.Duration, m.Longest.FromName, m.Longest.ToName, m.Longest.Time)
	}
	peak := "N/A"
	if m.PeakHour.Valid {
		peak = fmt.Sprintf("%02d:00", m.PeakHour.Value())
	}

	rows := [][]string{
		{"Total Calls", strconv.Itoa(m.Total)},
		{"Inbound Calls", fmt.Sprintf("%d (%s %%)", m.Inbound.Value(), formatRate(utils.Pct(m.Inbound.Value(), m.Total)))},
		{"Outbound Calls", fmt.Sprintf("%d (%s %%)", m.Outbound.Value(), formatRate(utils.Pct(m.Outbound.Value(), m.Total)))},
		{"Answered %", formatRate(m.AnsweredPct.Value()) + " %"},
		{"Missed %", formatRate(m.MissedPct.Value()) + " %"},
		{"Voicemail %", formatRate(m.VoicemailPct.Value()) + " %"},
		{"Blocked %", formatRate(m.BlockedPct.Value()) + " %"},
		{"Avg Duration", utils.FormatHMS(int(m.AvgDurationSec.Value()))},
		{"Median Duration", utils.FormatHMS(int(m.MedianDurationSec.Value()))},
		{"Total Talk Time", utils.FormatHMS(int(m.TalkTimeSec.Value()))},
		{"Longest Call", longest},
		{"Peak Hour", peak},
	}
	return rows
}

// BuildCallMarkdown composes the call report sections in fixed order.
func (s *ReportService) BuildCallMarkdown(summary, kpiTable string, report *models.CallReport) string {
	sections := []string{
		Section("Executive Summary", summary),
		Section("Key Metrics", kpiTable),
		Section("Call-Result Distribution", ChartEmbed(report.Charts["call_result"])),
		Section("Daily Call Volume", ChartEmbed(report.Charts["daily_volume"])),
		Section("Top Talk-Time Owners", MarkdownTable([]string{"owner", "talk_time"}, talkRows(report.TopTalk))),
		Section("Top External Inbound Numbers", MarkdownTable([]string{"From Number", "calls"}, numberRows(report.TopNumbers))),
		Section("Top Inbound Locations", MarkdownTable([]string{"location", "calls"}, locationRows(report.TopLocations))),
		Section("High-Miss Owners (> 20 % missed)", MarkdownTable([]string{"owner", "total", "missed", "missed_pct"}, missOwnerRows(report.MissByOwner))),
		Section("Days Over 30 % Missed", MarkdownTable([]string{"Date", "total", "missed", "missed_pct"}, missDayRows(report.MissDays))),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// CallPDFSections mirrors the call Markdown sections for PDF rendering.
// Chart sections are omitted; the PDF carries text and tables only.
func (s *ReportService) CallPDFSections(report *models.CallReport) []PDFSection {
	return []PDFSection{
		{Title: "Executive Summary", Text: report.Summary},
		{Title: "Key Metrics", Headers: []string{"Metric", "Value"}, Rows: s.callKPIRows(report.KPI)},
		{Title: "Top Talk-Time Owners", Headers: []string{"Owner", "Talk Time"}, Rows: talkRows(report.TopTalk)},
		{Title: "Top External Inbound Numbers", Headers: []string{"From Number", "Calls"}, Rows: numberRows(report.TopNumbers)},
		{Title: "Top Inbound Locations", Headers: []string{"Location", "Calls"}, Rows: locationRows(report.TopLocations)},
		{Title: "High-Miss Owners (> 20 % missed)", Headers: []string{"Owner", "Total", "Missed", "Missed %"}, Rows: missOwnerRows(report.MissByOwner)},
		{Title: "Days Over 30 % Missed", Headers: []string{"Date", "Total", "Missed", "Missed %"}, Rows: missDayRows(report.MissDays)},
	}
}

func talkRows(top []models.OwnerTalk) [][]string {
	rows := make([][]string, 0, len(top))
	for _, r := range top {
		rows = append(rows, []string{r.Owner, r.TalkTime})
	}
	return rows
}

func numberRows(top []models.NumberCalls) [][]string {
	rows := make([][]string, 0, len(top))
	for _, r := range top {
		rows = append(rows, []string{r.Number, strconv.Itoa(r.Calls)})
	}
	return rows
}

func locationRows(top []models.LocationCalls) [][]string {
	rows := make([][]string, 0, len(top))
	for _, r := range top {
		rows = append(rows, []string{r.Location, strconv.Itoa(r.Calls)})
	}
	return rows
}

func missOwnerRows(miss []models.OwnerMissRate) [][]string {
	rows := make([][]string, 0, len(miss))
	for _, r := range miss {
		rows = append(rows, []string{r.Owner, strconv.Itoa(r.Total), strconv.Itoa(r.Missed), formatRate(r.MissedPct)})
	}
	return rows
}

func missDayRows(miss []models.DayMissRate) [][]string {
	rows := make([][]string, 0, len(miss))
	for _, r := range miss {
		rows = append(rows, []string{r.Date, strconv.Itoa(r.Total), strconv.Itoa(r.Missed), formatRate(r.MissedPct)})
	}
	return rows
}

// QueueKPITable renders the queue KPI table as GitHub Markdown.
func (s *ReportService) QueueKPITable(m models.QueueMetrics) string {
	return MarkdownTable([]string{"Metric", "Value"}, s.queueKPIRows(m))
}

func (s *ReportService) queueKPIRows(m models.QueueMetrics) [][]string {
	peak := "N/A"
	if m.PeakInterval != nil {
		peak = fmt.Sprintf("%d calls at %s", m.PeakInterval.Answered, m.PeakInterval.Time)
	}
	worst := "N/A"
	if m.WorstInterval != nil {
		worst = fmt.Sprintf("%d calls at %s", m.WorstInterval.Abandoned, m.WorstInterval.Time)
	}

	rows := [][]string{
		{"Total Calls Offered", comma(m.TotalOffered)},
		{"Calls Answered", fmt.Sprintf("%s (%s%%)", comma(m.TotalAnswered), formatRate(m.AnswerRate.Value()))},
		{"Calls Abandoned", fmt.Sprintf("%s (%s%%)", comma(m.TotalAbandoned), formatRate(m.AbandonmentRate.Value()))},
		{"Calls Overflowed", fmt.Sprintf("%s (%s%%)", comma(m.TotalOverflowed), formatRate(m.OverflowRate.Value()))},
		{"Answer Rate", formatRate(m.AnswerRate.Value()) + "%"},
		{"Abandonment Rate", formatRate(m.AbandonmentRate.Value()) + "%"},
		{"Overflow Rate", formatRate(m.OverflowRate.Value()) + "%"},
		{"Average Wait Time", utils.FormatMMSS(m.AvgWaitSec.Value())},
		{"Maximum Wait Time", utils.FormatMMSS(float64(m.MaxWaitSec.Value()))},
		{"Average Handle Time", utils.FormatMMSS(m.AvgHandleSec.Value())},
		{"Peak Call Period", peak},
		{"Worst Abandonment Period", worst},
	}
	return rows
}

// BuildQueueMarkdown composes the queue report sections in fixed order.
// Agent sections are appended only when agent data exists. trendRows
// bounds the "Service Level by Hour" table.
func (s *ReportService) BuildQueueMarkdown(summary, kpiTable string, report *models.QueueReport, maxTrendRows int) string {
	sections := []string{
		Section("Executive Summary", summary),
		Section("Key Performance Indicators", kpiTable),
		Section("Service Level Trends", ChartEmbed(report.Charts["abandonment"])),
		Section("Hourly Call Patterns", ChartEmbed(report.Charts["hourly"])),
		Section("Service Level by Hour", MarkdownTable(
			[]string{"Hour", "Answered", "Abandoned", "Overflowed", "Offered", "Abandonment Rate"},
			trendRows(report.ServiceTrends, maxTrendRows))),
	}

	if report.Agents != nil && len(report.Agents.TopVolume) > 0 {
		sections = append(sections,
			Section("Agent Performance", ChartEmbed(report.Charts["agents"])),
			Section("Top Agents by Call Volume", MarkdownTable(
				[]string{"Agent", "Answered Calls", "Avg Handle Time"}, volumeRows(report.Agents.TopVolume))),
			Section("Most Efficient Agents", MarkdownTable(
				[]string{"Agent", "Answered Calls", "Efficiency", "Avg Handle Time"}, efficiencyRows(report.Agents.MostEfficient))),
		)
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// QueuePDFSections mirrors the queue Markdown sections for PDF rendering.
func (s *ReportService) QueuePDFSections(report *models.QueueReport, maxTrendRows int) []PDFSection {
	sections := []PDFSection{
		{Title: "Executive Summary", Text: report.Summary},
		{Title: "Key Performance Indicators", Headers: []string{"Metric", "Value"}, Rows: s.queueKPIRows(report.Metrics)},
		{
			Title:   "Service Level by Hour",
			Headers: []string{"Hour", "Answered", "Abandoned", "Overflowed", "Offered", "Abandonment Rate"},
			Rows:    trendRows(report.ServiceTrends, maxTrendRows),
		},
	}
	if report.Agents != nil && len(report.Agents.TopVolume) > 0 {
		sections = append(sections,
			PDFSection{Title: "Top Agents by Call Volume", Headers: []string{"Agent", "Answered Calls", "Avg Handle Time"}, Rows: volumeRows(report.Agents.TopVolume)},
			PDFSection{Title: "Most Efficient Agents", Headers: []string{"Agent", "Answered Calls", "Efficiency", "Avg Handle Time"}, Rows: efficiencyRows(report.Agents.MostEfficient)},
		)
	}
	return sections
}

func trendRows(trends []models.HourlyTrend, limit int) [][]string {
	if len(trends) > limit {
		trends = trends[:limit]
	}
	rows := make([][]string, 0, len(trends))
	for _, t := range trends {
		rows = append(rows, []string{
			fmt.Sprintf("%02d:00", t.Hour),
			strconv.Itoa(t.Answered),
			strconv.Itoa(t.Abandoned),
			strconv.Itoa(t.Overflowed),
			strconv.Itoa(t.Offered),
			formatRate(t.AbandonmentRate) + "%",
		})
	}
	return rows
}

func volumeRows(agents []models.AgentPerformance) [][]string {
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{a.Agent, strconv.Itoa(a.Answered), utils.FormatMMSS(a.AvgHandleSec)})
	}
	return rows
}

func efficiencyRows(agents []models.AgentPerformance) [][]string {
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{
			a.Agent,
			strconv.Itoa(a.Answered),
			strconv.FormatFloat(a.Efficiency, 'f', 3, 64),
			utils.FormatMMSS(a.AvgHandleSec),
		})
	}
	return rows
}

// WriteMarkdown writes a Markdown document.
func (s *ReportService) WriteMarkdown(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("unable to write markdown report: %w", err)
	}
	return nil
}

// WriteCallJSON writes the JSON mirror next to the Markdown file. A
// schema violation is logged but does not block the write.
func (s *ReportService) WriteCallJSON(mdPath string, report *models.CallReport) (string, error) {
	return writeJSON(mdPath, report, validation.ValidateCallReport)
}

// WriteQueueJSON writes the queue JSON mirror next to the Markdown file.
func (s *ReportService) WriteQueueJSON(mdPath string, report *models.QueueReport) (string, error) {
	return writeJSON(mdPath, report, validation.ValidateQueueReport)
}

func writeJSON(mdPath string, doc any, validate func([]byte) error) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("unable to marshal report JSON: %w", err)
	}
	if err := validate(data); err != nil {
		log.Warn().Err(err).Msg("report JSON failed schema validation")
	}

	jsonPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".json"
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write JSON report: %w", err)
	}
	return jsonPath, nil
}

// formatRate prints a rounded percentage with at least one decimal, so
// whole rates render as "80.0" rather than "80".
func formatRate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// comma formats an integer with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}
