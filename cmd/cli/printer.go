package main

import (
	"fmt"
	"io"
	"strings"

	"scadaval/app"
	"scadaval/domain/deviation"
	"scadaval/internal/presentation"

	"github.com/charmbracelet/lipgloss"
)

var tierStyles = map[deviation.Tier]lipgloss.Style{
	deviation.TierGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00AF00")),
	deviation.TierOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	deviation.TierRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
}

var headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)

const barWidth = 40

// printer writes a report as a plain text table
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: color}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) printReport(report *app.ComparisonReport) {
	rows := presentation.BuildRows(report.ColumnA, report.ColumnB, report.Records)

	headers := []string{"#", "Column1", "Column2", "Value1", "Value2", "Difference", "Percentage"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{fmt.Sprint(r.Index), r.Column1, r.Column2, r.Value1, r.Value2, r.Difference, r.Percentage}
	}

	widths := make([]int, len(headers))
	for j, h := range headers {
		widths[j] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for j, c := range row {
			if w := lipgloss.Width(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	line := make([]string, len(headers))
	for j, h := range headers {
		line[j] = p.style(headerStyle, padRight(h, widths[j]))
	}
	fmt.Fprintln(p.w, strings.Join(line, "  "))

	for i, row := range cells {
		for j, c := range row {
			if j >= 3 {
				line[j] = padLeft(c, widths[j])
			} else {
				line[j] = padRight(c, widths[j])
			}
		}
		if style, ok := tierStyles[rows[i].Tier]; ok {
			last := len(line) - 1
			line[last] = p.style(style, line[last])
		}
		fmt.Fprintln(p.w, strings.Join(line, "  "))
	}

	headline := presentation.NewHeadline(report.Summary)
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "Average Percentage Deviation (absolute): %s\n", headline.AverageDeviation)
	fmt.Fprintf(p.w, "SCADA Result Deviation: %s\n", headline.ResultDeviation)
	fmt.Fprintf(p.w, "Missing: %d  Undefined: %d\n", report.Summary.MissingCount, report.Summary.UndefinedCount)
	fmt.Fprintln(p.w)

	p.printDistribution(report.Summary)
}

func (p *printer) printDistribution(summary deviation.Summary) {
	slices, ok := presentation.Distribution(summary)
	if !ok {
		fmt.Fprintln(p.w, presentation.NoChartData)
		return
	}

	labelWidth := 0
	for _, sl := range slices {
		if w := lipgloss.Width(sl.Label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, sl := range slices {
		bar := strings.Repeat("#", int(sl.Share*barWidth+0.5))
		fmt.Fprintf(p.w, "%s  %s %d (%.1f%%)\n",
			padRight(sl.Label, labelWidth), p.style(tierStyles[sl.Tier], padRight(bar, barWidth)), sl.Count, sl.Percent())
	}
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
