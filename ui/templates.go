package ui

import (
	"bytes"
	"html/template"
	"net/http"

	"scadaval/ui/templates/fragments"
)

var funcMap = template.FuncMap{
	// css marks a colour produced by the presentation package as safe CSS
	"css": func(s string) template.CSS { return template.CSS(s) },
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, fragments.GetAllTemplatePaths()...)
}

// renderTemplate executes a template with the given data
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	// First render to a buffer to catch any errors before writing to response
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		a.logger.Error("Template error for %s: %v", templateName, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("Error writing template response: %v", err)
	}
}

// renderHTML writes an already rendered fragment
func (a *App) renderHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		a.logger.Warn("Error writing fragment response: %v", err)
	}
}
