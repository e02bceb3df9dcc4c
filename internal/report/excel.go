package report

import (
	"fmt"
	"strings"

	"bestest-extract/internal/config"
	"bestest-extract/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes the workbook summary report
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(summary *model.Summary, cfg *config.Config) error {
	outputFile := cfg.GetReportPath(".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, summary); err != nil {
		return err
	}
	if err := e.writeTables(f, styler, summary); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	return f.SaveAs(outputFile)
}

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, summary *model.Summary) error {
	sheet := "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val int
	}{
		{"Result Documents", len(summary.Documents)},
		{"Tables", summary.TotalTables},
		{"Values", summary.TotalValues},
		{"Null Values", summary.TotalNulls},
	}
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 2

	headers := []string{"No", "Document", "Software", "Version", "Release Date", "Tables", "Cases", "Note"}
	e.writeRow(f, sheet, row, headers, s.HeaderStyle)
	row++

	for i, d := range summary.Documents {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), d.File)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), d.Software)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), d.Version)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), d.ReleaseDate)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), len(d.Tables))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), d.CaseCount())
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), s.DefaultStyle)

		if empty := d.EmptyTables(); len(empty) > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), "Empty: "+strings.Join(empty, ", "))
			f.SetCellStyle(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("H%d", row), s.WarningStyle)
		}
		row++
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "C", 36)
	f.SetColWidth(sheet, "H", "H", 50)
	return nil
}

func (e *ExcelExporter) writeTables(f *excelize.File, s *Styler, summary *model.Summary) error {
	sheet := "Tables"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Document", "Table", "Cases", "Values", "Nulls", "Case IDs"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, d := range summary.Documents {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), d.File)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s %s", d.Software, d.Version))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.DocumentStyle)
		row++

		for _, t := range d.Tables {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), t.Name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), len(t.Cases))
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), t.Values)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), t.Nulls)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), strings.Join(t.Cases, ", "))

			style := s.DefaultStyle
			if t.Values == 0 || t.Nulls > 0 {
				style = s.WarningStyle
			}
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
			f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("E%d", row), s.NumberStyle)
			f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), s.DefaultStyle)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 36)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "F", "F", 60)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
