package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"bestest-extract/internal/config"
	"bestest-extract/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(summary *model.Summary, cfg *config.Config) error {
	// docx only reads from a path, so the embedded template goes through a temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "bestest-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()
	doc.Replace("{{Date}}", summary.GeneratedAt, -1)
	doc.Replace("{{TotalDocuments}}", fmt.Sprintf("%d", len(summary.Documents)), -1)
	doc.Replace("{{TotalTables}}", fmt.Sprintf("%d", summary.TotalTables), -1)
	doc.Replace("{{Content}}", BuildContent(summary), -1)

	outFile := cfg.GetReportPath(".docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

// BuildContent renders the plain-text body injected at {{Content}}
func BuildContent(summary *model.Summary) string {
	var sb strings.Builder

	sb.WriteString("RESULT DOCUMENTS\n\n")
	sb.WriteString(fmt.Sprintf("  • Documents: %d\n", len(summary.Documents)))
	sb.WriteString(fmt.Sprintf("  • Values: %d (%d null)\n\n", summary.TotalValues, summary.TotalNulls))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	for i, d := range summary.Documents {
		sb.WriteString(fmt.Sprintf("%s %s\n", d.Software, d.Version))
		sb.WriteString(fmt.Sprintf("File: %s\n", d.File))
		if d.ReleaseDate != "" {
			sb.WriteString(fmt.Sprintf("Release Date: %s\n", d.ReleaseDate))
		}
		sb.WriteString("\n")

		sb.WriteString(fmt.Sprintf("%-45s %8s %8s %8s\n", "Table", "Cases", "Values", "Nulls"))
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, t := range d.Tables {
			sb.WriteString(fmt.Sprintf("%-45s %8d %8d %8d\n", t.Name, len(t.Cases), t.Values, t.Nulls))
		}

		if empty := d.EmptyTables(); len(empty) > 0 {
			sb.WriteString(fmt.Sprintf("\nEmpty tables: %s\n", strings.Join(empty, ", ")))
		}

		if i < len(summary.Documents)-1 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
	}
	return sb.String()
}
