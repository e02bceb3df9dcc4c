package html

import (
	"html/template"
	"os"
	"strings"

	"bestest-extract/internal/config"
	"bestest-extract/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// ReportData is the template input
type ReportData struct {
	GeneratedAt string
	Summary     *model.Summary
}

func (e *HTMLExporter) Export(summary *model.Summary, cfg *config.Config) error {
	data := ReportData{
		GeneratedAt: summary.GeneratedAt,
		Summary:     summary,
	}

	outputFile := cfg.GetReportPath(".html")
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	tmpl, err := template.New("bestest-report").Funcs(template.FuncMap{
		"join":      strings.Join,
		"tableRow":  tableRowClass,
		"caseCount": func(d model.DocumentSummary) int { return d.CaseCount() },
	}).Parse(ReportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(f, data)
}

// tableRowClass flags tables that came out empty or with nulls
func tableRowClass(t model.TableSummary) string {
	switch {
	case t.Values == 0:
		return "row-empty"
	case t.Nulls > 0:
		return "row-nulls"
	default:
		return ""
	}
}
