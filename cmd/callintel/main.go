package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nycdan-n2p/call-intel-widget/internal/config"
	"github.com/nycdan-n2p/call-intel-widget/internal/models"
	"github.com/nycdan-n2p/call-intel-widget/internal/parser"
	"github.com/nycdan-n2p/call-intel-widget/internal/services"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "calls":
		runCalls(cfg, os.Args[2:])
	case "queue":
		runQueue(cfg, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  callintel calls --input <csv> [--output report.md] [--openai-key K] [--timezone TZ] [--as-of YYYY-MM-DD] [--pdf]
  callintel queue --queue-csv <csv> [--agent-csv <csv>] [--output queue_report.md] [--openai-key K] [--timezone TZ] [--as-of YYYY-MM-DD] [--pdf]`)
}

// setupLogging configures the global zerolog logger on stderr so stdout
// stays clean for shell composition.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// common holds the flags shared by both subcommands, resolved against
// the environment config.
type common struct {
	output string
	loc    *time.Location
	asOf   time.Time
	pdf    bool
}

func commonFlags(fs *flag.FlagSet, defaultOutput, defaultTZ string) (output, key, timezone, asOf *string, pdf *bool) {
	output = fs.String("output", defaultOutput, "markdown output path")
	key = fs.String("openai-key", "", "OpenAI API key (defaults to OPENAI_API_KEY)")
	timezone = fs.String("timezone", defaultTZ, "IANA timezone for report timestamps")
	asOf = fs.String("as-of", "", "report as-of date, YYYY-MM-DD (default: today)")
	pdf = fs.Bool("pdf", false, "also write a PDF rendition next to the markdown")
	return
}

func resolveCommon(cfg *config.Config, output, key, timezone, asOf string, pdf bool) common {
	if key != "" {
		cfg.OpenAI.APIKey = key
	}
	cfg.Report.Timezone = timezone

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		exitWithError(fmt.Errorf("invalid timezone %q: %w", timezone, err))
	}

	now := time.Now().In(loc)
	if asOf != "" {
		parsed, err := time.ParseInLocation("2006-01-02", asOf, loc)
		if err != nil {
			exitWithError(fmt.Errorf("invalid as-of date %q: %w", asOf, err))
		}
		now = parsed
	}

	return common{output: output, loc: loc, asOf: now, pdf: pdf}
}

func runCalls(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("calls", flag.ExitOnError)
	input := fs.String("input", "", "path to call history CSV (required)")
	output, key, timezone, asOf, pdf := commonFlags(fs, "report.md", cfg.Report.Timezone)
	fs.Parse(args)

	if *input == "" {
		exitWithError(fmt.Errorf("--input is required"))
	}
	c := resolveCommon(cfg, *output, *key, *timezone, *asOf, *pdf)

	table, err := parser.LoadCalls(*input, c.loc)
	if err != nil {
		exitWithError(err)
	}
	log.Info().Int("records", len(table.Records)).Int("dropped", table.Dropped).Msg("loaded call data")

	calls := services.NewCallService(cfg.Report)
	report := &models.CallReport{
		ReportID:     uuid.NewString(),
		GeneratedAt:  time.Now().In(c.loc).Format(time.RFC3339),
		Timezone:     cfg.Report.Timezone,
		Source:       *input,
		KPI:          calls.Aggregate(table),
		TopTalk:      calls.TopTalkTime(table),
		TopNumbers:   calls.TopInboundNumbers(table),
		TopLocations: calls.TopInboundLocations(table),
		MissByOwner:  calls.HighMissOwners(table),
		MissDays:     calls.HighMissDays(table),
		Charts:       map[string]string{},
	}

	charts := services.NewChartService(cfg.Report.ChartDir)
	report.Charts["call_result"] = renderChart("call result", func() (string, error) {
		return charts.CallResultChart(calls.ResultCounts(table))
	})
	report.Charts["daily_volume"] = renderChart("daily volume", func() (string, error) {
		return charts.DailyVolumeChart(calls.DailyVolume(table, c.asOf))
	})

	rpt := services.NewReportService()
	kpiTable := rpt.CallKPITable(report.KPI)

	ai := services.NewAIService(cfg.OpenAI)
	report.Summary = ai.Summarize(context.Background(), services.CallSummaryPrompt(kpiTable))

	writeArtifacts(rpt, c,
		rpt.BuildCallMarkdown(report.Summary, kpiTable, report),
		func() (string, error) { return rpt.WriteCallJSON(c.output, report) },
		"Call Activity Report", report.GeneratedAt,
		func() []services.PDFSection { return rpt.CallPDFSections(report) })
}

func runQueue(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("queue", flag.ExitOnError)
	queueCSV := fs.String("queue-csv", "", "path to queue interval CSV (required)")
	agentCSV := fs.String("agent-csv", "", "path to agent interval CSV (optional)")
	output, key, timezone, asOf, pdf := commonFlags(fs, "queue_report.md", cfg.Report.Timezone)
	fs.Parse(args)

	if *queueCSV == "" {
		exitWithError(fmt.Errorf("--queue-csv is required"))
	}
	c := resolveCommon(cfg, *output, *key, *timezone, *asOf, *pdf)

	intervals, err := parser.LoadQueueIntervals(*queueCSV, c.loc, c.asOf)
	if err != nil {
		exitWithError(err)
	}
	log.Info().Int("intervals", len(intervals)).Msg("loaded queue data")

	queue := services.NewQueueService(cfg.Report)
	report := &models.QueueReport{
		ReportID:      uuid.NewString(),
		GeneratedAt:   time.Now().In(c.loc).Format(time.RFC3339),
		Timezone:      cfg.Report.Timezone,
		QueueSource:   *queueCSV,
		Metrics:       queue.Metrics(intervals),
		ServiceTrends: queue.HourlyTrends(intervals),
		Charts:        map[string]string{},
	}

	if *agentCSV != "" {
		agentIntervals, err := parser.LoadAgentIntervals(*agentCSV, c.loc, c.asOf)
		if err != nil {
			exitWithError(err)
		}
		log.Info().Int("intervals", len(agentIntervals)).Msg("loaded agent data")

		if agents := queue.AgentPerformance(agentIntervals); len(agents) > 0 {
			report.AgentSource = *agentCSV
			report.Agents = &models.AgentReport{
				AllAgents:     agents,
				TopVolume:     queue.TopVolume(agents),
				MostEfficient: queue.MostEfficient(agents),
			}
		}
	}

	charts := services.NewChartService(cfg.Report.ChartDir)
	report.Charts["abandonment"] = renderChart("abandonment trend", func() (string, error) {
		return charts.AbandonmentTrendChart(intervals)
	})
	report.Charts["hourly"] = renderChart("hourly patterns", func() (string, error) {
		return charts.HourlyPatternsChart(report.ServiceTrends)
	})
	if report.Agents != nil {
		report.Charts["agents"] = renderChart("agent performance", func() (string, error) {
			return charts.AgentPerformanceChart(report.Agents.TopVolume)
		})
	}

	rpt := services.NewReportService()
	kpiTable := rpt.QueueKPITable(report.Metrics)

	ai := services.NewAIService(cfg.OpenAI)
	report.Summary = ai.Summarize(context.Background(), services.QueueSummaryPrompt(kpiTable))

	writeArtifacts(rpt, c,
		rpt.BuildQueueMarkdown(report.Summary, kpiTable, report, cfg.Report.TrendRows),
		func() (string, error) { return rpt.WriteQueueJSON(c.output, report) },
		"Queue Performance Report", report.GeneratedAt,
		func() []services.PDFSection { return rpt.QueuePDFSections(report, cfg.Report.TrendRows) })
}

// renderChart runs one chart draw and degrades a failure to a skipped
// chart, so a headless font or I/O problem never aborts the report.
func renderChart(name string, draw func() (string, error)) string {
	path, err := draw()
	if err != nil {
		log.Warn().Err(err).Str("chart", name).Msg("chart skipped")
		return ""
	}
	return path
}

// writeArtifacts writes the Markdown report, its JSON mirror, and the
// optional PDF rendition.
func writeArtifacts(rpt *services.ReportService, c common, markdown string,
	writeJSON func() (string, error), pdfTitle, generatedAt string, sections func() []services.PDFSection) {

	if err := rpt.WriteMarkdown(c.output, markdown); err != nil {
		exitWithError(err)
	}
	jsonPath, err := writeJSON()
	if err != nil {
		exitWithError(err)
	}
	log.Info().Str("markdown", c.output).Str("json", jsonPath).Msg("report written")

	if c.pdf {
		pdfPath := strings.TrimSuffix(c.output, filepath.Ext(c.output)) + ".pdf"
		pdfSvc := services.NewPDFService()
		if err := pdfSvc.WriteReportPDF(pdfPath, pdfTitle, generatedAt, sections()); err != nil {
			exitWithError(err)
		}
		log.Info().Str("pdf", pdfPath).Msg("pdf written")
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
