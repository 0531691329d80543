package services

import (
	"html/template"
	"strings"

	"scadaval/app"
	"scadaval/domain/core"
	"scadaval/internal"
	"scadaval/internal/presentation"
	"scadaval/ui/templates/fragments"
)

// ComparisonView is everything the results page shows for one report
type ComparisonView struct {
	DatasetID      core.DatasetID
	Report         *app.ComparisonReport
	Rows           []presentation.Row
	Headline       presentation.Headline
	Slices         []presentation.Slice
	HasChart       bool
	ChartGradient  template.CSS
	NoChartMessage string
	Legend         template.HTML
}

type RenderService struct {
	templates *template.Template
	logger    *internal.Logger
}

func NewRenderService(templates *template.Template, logger *internal.Logger) *RenderService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RenderService{
		templates: templates,
		logger:    logger,
	}
}

// BuildComparisonView formats a report for the results templates
func BuildComparisonView(id core.DatasetID, report *app.ComparisonReport) *ComparisonView {
	slices, ok := presentation.Distribution(report.Summary)
	return &ComparisonView{
		DatasetID:      id,
		Report:         report,
		Rows:           presentation.BuildRows(report.ColumnA, report.ColumnB, report.Records),
		Headline:       presentation.NewHeadline(report.Summary),
		Slices:         slices,
		HasChart:       ok,
		ChartGradient:  template.CSS(presentation.ConicGradient(slices)),
		NoChartMessage: presentation.NoChartData,
		Legend:         template.HTML(presentation.LegendHTML()),
	}
}

// RenderResults renders the results fragment, used for HTMX swaps
func (s *RenderService) RenderResults(view *ComparisonView) string {
	var buf strings.Builder
	if err := s.templates.ExecuteTemplate(&buf, fragments.Results, view); err != nil {
		s.logger.Error("Failed to render results template: %v", err)
		return `<div class="error">Error rendering comparison results</div>`
	}
	return buf.String()
}
