package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/utils"

	"github.com/rs/zerolog/log"
)

// Canonical call-history column names, keyed by the lowercased header
// after any trailing "(unit)" annotation is stripped.
var callHeaders = map[string]string{
	"direction":   "direction",
	"call result": "result",
	"from name":   "from_name",
	"from number": "from_number",
	"via":         "via",
	"to name":     "to_name",
	"to number":   "to_number",
	"duration":    "duration",
	"time":        "time",
}

// Timestamp layouts accepted in the call-history Time column. Zone-less
// values are read as UTC and then converted to the report timezone.
var callTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 03:04:05 PM",
	"01/02/2006 15:04",
}

// LoadCalls reads and normalizes a call-history CSV from a path.
func LoadCalls(path string, loc *time.Location) (*models.CallTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open call CSV: %w", err)
	}
	defer file.Close()
	return ParseCalls(file, loc)
}

// ParseCalls reads call-history rows from r. Rows with unparseable
// timestamps are dropped and counted; every other malformed field
// degrades to its zero value.
func ParseCalls(r io.Reader, loc *time.Location) (*models.CallTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &models.CallTable{}, nil
		}
		return nil, fmt.Errorf("unable to read call CSV header: %w", err)
	}

	cols := map[string]int{}
	for idx, h := range headers {
		if canonical, ok := callHeaders[normalizeCallHeader(h)]; ok {
			if _, seen := cols[canonical]; !seen {
				cols[canonical] = idx
			}
		}
	}

	table := &models.CallTable{
		HasDirection: has(cols, "direction"),
		HasResult:    has(cols, "result"),
	}

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("unable to read call CSV: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		ts, ok := parseCallTime(field(record, cols, "time"), loc)
		if !ok {
			table.Dropped++
			continue
		}

		rec := models.CallRecord{
			Direction:   field(record, cols, "direction"),
			Result:      field(record, cols, "result"),
			FromName:    field(record, cols, "from_name"),
			FromNumber:  field(record, cols, "from_number"),
			Via:         field(record, cols, "via"),
			ToName:      field(record, cols, "to_name"),
			ToNumber:    field(record, cols, "to_number"),
			DurationSec: utils.ParseDurationSeconds(field(record, cols, "duration")),
			Time:        ts,
			Date:        ts.Format("2006-01-02"),
			Hour:        ts.Hour(),
		}
		table.Records = append(table.Records, rec)
	}

	if table.Dropped > 0 {
		log.Info().Int("dropped", table.Dropped).Msg("dropped call rows with unparseable timestamps")
	}
	return table, nil
}

// normalizeCallHeader strips a trailing parenthesized unit annotation,
// trims, and lowercases; "Duration (sec)" and "duration" map the same.
func normalizeCallHeader(h string) string {
	if idx := strings.Index(h, "("); idx >= 0 {
		h = h[:idx]
	}
	return strings.ToLower(strings.TrimSpace(h))
}

func parseCallTime(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range callTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			// Zone-less layouts parse as UTC, matching the platform export.
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// Fixed queue and agent summary column names, after uppercase + trim.
const (
	colDate        = "DATE"
	colInterval    = "INTERVAL"
	colAnswered    = "ANSWERED CALLS"
	colAbandoned   = "ABANDONED CALLS"
	colOverflowed  = "OVERFLOWED CALLS"
	colAvgWait     = "AVERAGE WAIT TIME"
	colMaxWait     = "MAXIMUM WAIT TIME"
	colMinWait     = "MINIMUM WAIT TIME"
	colAvgHandle   = "AVERAGE HANDLE TIME"
	colTotalHandle = "TOTAL HANDLE TIME"
	colMaxHandle   = "MAXIMUM HANDLE TIME"
	colMinHandle   = "MINIMUM HANDLE TIME"
	colAgent       = "AGENT"
)

// LoadQueueIntervals reads and normalizes a queue summary CSV.
func LoadQueueIntervals(path string, loc *time.Location, asOf time.Time) ([]models.QueueInterval, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open queue CSV: %w", err)
	}
	defer file.Close()
	return ParseQueueIntervals(file, loc, asOf)
}

// ParseQueueIntervals reads queue summary rows from r. When the DATE or
// INTERVAL column is missing entirely, every row is stamped with asOf.
func ParseQueueIntervals(r io.Reader, loc *time.Location, asOf time.Time) ([]models.QueueInterval, error) {
	cols, rows, err := readUpper(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read queue CSV: %w", err)
	}

	var intervals []models.QueueInterval
	dropped := 0
	for _, record := range rows {
		start, ok := intervalStart(record, cols, loc, asOf)
		if !ok {
			dropped++
			continue
		}
		intervals = append(intervals, models.QueueInterval{
			Start:        start,
			Date:         start.Format("2006-01-02"),
			Hour:         start.Hour(),
			Answered:     intField(record, cols, colAnswered),
			Abandoned:    intField(record, cols, colAbandoned),
			Overflowed:   intField(record, cols, colOverflowed),
			AvgWaitSec:   utils.ParseDurationSeconds(field(record, cols, colAvgWait)),
			MaxWaitSec:   utils.ParseDurationSeconds(field(record, cols, colMaxWait)),
			MinWaitSec:   utils.ParseDurationSeconds(field(record, cols, colMinWait)),
			AvgHandleSec: utils.ParseDurationSeconds(field(record, cols, colAvgHandle)),
		})
	}
	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("dropped queue intervals with unparseable dates")
	}
	return intervals, nil
}

// LoadAgentIntervals reads and normalizes an agent summary CSV.
func LoadAgentIntervals(path string, loc *time.Location, asOf time.Time) ([]models.AgentInterval, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open agent CSV: %w", err)
	}
	defer file.Close()
	return ParseAgentIntervals(file, loc, asOf)
}

// ParseAgentIntervals reads agent summary rows from r.
func ParseAgentIntervals(r io.Reader, loc *time.Location, asOf time.Time) ([]models.AgentInterval, error) {
	cols, rows, err := readUpper(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read agent CSV: %w", err)
	}

	var intervals []models.AgentInterval
	dropped := 0
	for _, record := range rows {
		start, ok := intervalStart(record, cols, loc, asOf)
		if !ok {
			dropped++
			continue
		}
		intervals = append(intervals, models.AgentInterval{
			Agent:          field(record, cols, colAgent),
			Start:          start,
			Answered:       intField(record, cols, colAnswered),
			TotalHandleSec: utils.ParseDurationSeconds(field(record, cols, colTotalHandle)),
			AvgHandleSec:   utils.ParseDurationSeconds(field(record, cols, colAvgHandle)),
			MaxHandleSec:   utils.ParseDurationSeconds(field(record, cols, colMaxHandle)),
			MinHandleSec:   utils.ParseDurationSeconds(field(record, cols, colMinHandle)),
		})
	}
	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("dropped agent intervals with unparseable dates")
	}
	return intervals, nil
}

// readUpper reads a CSV, returning a column map keyed by uppercased
// trimmed header names and the remaining rows.
func readUpper(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]int{}, nil, nil
		}
		return nil, nil, err
	}

	cols := map[string]int{}
	for idx, h := range headers {
		name := strings.ToUpper(strings.TrimSpace(h))
		if _, seen := cols[name]; !seen {
			cols[name] = idx
		}
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, err
		}
		if len(record) == 0 {
			continue
		}
		rows = append(rows, record)
	}
	return cols, rows, nil
}

// intervalStart combines the DATE (MM.DD.YYYY) and INTERVAL
// ("HH:MM - HH:MM") columns into the interval start time. When either
// column is absent the row is stamped with asOf instead.
func intervalStart(record []string, cols map[string]int, loc *time.Location, asOf time.Time) (time.Time, bool) {
	if !has(cols, colDate) || !has(cols, colInterval) {
		return asOf, true
	}
	return ParseIntervalStart(field(record, cols, colDate), field(record, cols, colInterval), loc)
}

// ParseIntervalStart parses a "MM.DD.YYYY" date plus the start of a
// "HH:MM - HH:MM" interval in loc.
func ParseIntervalStart(dateStr, intervalStr string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(dateStr), ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, day, year := zfill2(parts[0]), zfill2(parts[1]), strings.TrimSpace(parts[2])

	start := intervalStr
	if idx := strings.Index(intervalStr, " - "); idx >= 0 {
		start = intervalStr[:idx]
	}
	start = strings.TrimSpace(start)

	t, err := time.ParseInLocation("2006-01-02 15:04", year+"-"+month+"-"+day+" "+start, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func zfill2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func has(cols map[string]int, name string) bool {
	_, ok := cols[name]
	return ok
}

// field returns the named column of a record, or "" when the column is
// missing or the record is short. Missing columns act as synthetic
// empty columns.
func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// intField parses the named column as an integer, zero on failure.
func intField(record []string, cols map[string]int, name string) int {
	v, err := strconv.Atoi(field(record, cols, name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
