package ui

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"scadaval/adapters/excel"
	"scadaval/app"
	"scadaval/domain/core"
	apperrors "scadaval/internal/errors"
	"scadaval/ui/services"
	"scadaval/ui/templates/fragments"
)

type pageData struct {
	Title    string
	Error    string
	Datasets []*services.DatasetEntry
}

type datasetPageData struct {
	Title    string
	Error    string
	ID       core.DatasetID
	Source   string
	RowCount int
	Columns  []string
	ColumnA  string
	ColumnB  string
	View     *services.ComparisonView
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.datasets.Purge()
	a.renderTemplate(w, http.StatusOK, fragments.IndexPage, pageData{
		Title:    "Upload",
		Datasets: a.datasets.List(),
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{
		"status":   "ok",
		"datasets": len(a.datasets.List()),
	})
}

// handleUpload parses an uploaded workbook, caches it and redirects to its page
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if a.config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxUploadBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.renderError(w, r, apperrors.New(apperrors.CodeTooLarge,
				fmt.Sprintf("file exceeds the %d MB upload limit", a.config.MaxUploadBytes>>20)))
			return
		}
		a.renderError(w, r, apperrors.InvalidInput("please choose an Excel or CSV file to upload"))
		return
	}
	defer file.Close()

	sheet := strings.TrimSpace(r.FormValue("sheet"))
	if sheet == "" {
		sheet = a.config.Sheet
	}

	data, err := excel.ReadFrom(file, header.Filename, sheet)
	if err != nil {
		a.renderError(w, r, apperrors.Wrapf(err, "failed to read %s", header.Filename))
		return
	}

	id := a.datasets.Put(data)
	http.Redirect(w, r, "/datasets/"+id.String(), http.StatusSeeOther)
}

func (a *App) handleDataset(w http.ResponseWriter, r *http.Request) {
	entry, err := a.lookupDataset(r)
	if err != nil {
		a.renderError(w, r, err)
		return
	}
	a.renderTemplate(w, http.StatusOK, fragments.DatasetPage, newDatasetPage(entry))
}

// handleCompare runs the comparison for the selected columns. HTMX requests
// get the results fragment, everything else the full page.
func (a *App) handleCompare(w http.ResponseWriter, r *http.Request) {
	entry, err := a.lookupDataset(r)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	page := newDatasetPage(entry)
	page.ColumnA = r.URL.Query().Get("a")
	page.ColumnB = r.URL.Query().Get("b")

	report, err := a.service.Compare(r.Context(), app.ComparisonRequest{
		Table:   entry.Table,
		ColumnA: page.ColumnA,
		ColumnB: page.ColumnB,
	})
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if isHTMX(r) {
			a.renderHTML(w, status, `<p class="error">`+escape(err.Error())+`</p>`)
			return
		}
		page.Error = err.Error()
		a.renderTemplate(w, status, fragments.DatasetPage, page)
		return
	}

	view := services.BuildComparisonView(entry.ID, report)
	if isHTMX(r) {
		a.renderHTML(w, http.StatusOK, a.render.RenderResults(view))
		return
	}
	page.Title = report.ColumnA + " vs " + report.ColumnB
	page.View = view
	a.renderTemplate(w, http.StatusOK, fragments.ComparePage, page)
}

// handleExport downloads the comparison as an xlsx workbook
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	entry, err := a.lookupDataset(r)
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	report, err := a.service.Compare(r.Context(), app.ComparisonRequest{
		Table:   entry.Table,
		ColumnA: r.URL.Query().Get("a"),
		ColumnB: r.URL.Query().Get("b"),
	})
	if err != nil {
		a.renderError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.ExportResults(&buf, report.ColumnA, report.ColumnB, report.Result()); err != nil {
		a.renderError(w, r, apperrors.Wrap(err, "export failed"))
		return
	}

	filename := fmt.Sprintf("deviation_%s.xlsx", report.Fingerprint.Short())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("Error writing export: %v", err)
	}
}

func (a *App) lookupDataset(r *http.Request) (*services.DatasetEntry, error) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperrors.Coded(apperrors.CodeNotFound, fmt.Errorf("%w: %v", core.ErrDatasetNotFound, err))
	}
	entry, err := a.datasets.Get(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "dataset is no longer loaded, please upload it again")
	}
	return entry, nil
}

func (a *App) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("[UI] %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		a.logger.Debug("[UI] %s %s: %v", r.Method, r.URL.Path, err)
	}
	a.renderTemplate(w, status, fragments.ErrorPage, pageData{Title: "Error", Error: err.Error()})
}

func newDatasetPage(entry *services.DatasetEntry) datasetPageData {
	return datasetPageData{
		Title:    entry.Table.Source(),
		ID:       entry.ID,
		Source:   entry.Table.Source(),
		RowCount: entry.Table.RowCount(),
		Columns:  entry.Table.Columns(),
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func escape(s string) string {
	return template.HTMLEscapeString(s)
}
