package services

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

// NoDataMarker replaces empty tables and skipped charts in Markdown
// output.
const NoDataMarker = "_— no data —_"

// MarkdownTable renders a GitHub-style table, or the no-data marker
// when there are no rows.
func MarkdownTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return "\n" + NoDataMarker + "\n"
	}

	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("|")
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.AppendBulk(rows)
	table.Render()
	return "\n" + b.String()
}

// Section renders one titled Markdown section.
func Section(title, body string) string {
	return "## " + title + "\n" + body
}

// ChartEmbed renders an image embed for a chart path, or the no-data
// marker when the chart was skipped.
func ChartEmbed(path string) string {
	if path == "" {
		return "\n" + NoDataMarker + "\n"
	}
	return "\n![](" + path + ")\n"
}
