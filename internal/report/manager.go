package report

import (
	"strings"

	"bestest-extract/internal/report/html"
	"bestest-extract/internal/report/word"
)

var formatAliases = map[string]string{
	"excel": "excel",
	"xlsx":  "excel",
	"html":  "html",
	"word":  "word",
	"docx":  "word",
}

// GetExporters returns a list of Exporters based on requested formats.
// Unknown formats are ignored.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		name, ok := formatAliases[strings.ToLower(strings.TrimSpace(fmtStr))]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		}
	}

	return exporters
}
