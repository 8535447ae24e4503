package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"

	"ReservoirBench/internal/util"
)

// Save writes the report to path in the format its extension names.
func Save(rep *Report, path string) error {
	if rep == nil || len(rep.Rows) == 0 {
		return util.BadInput("nothing to save, build a report first")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return util.IOFailure("create report directory", err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return saveCSV(rep, path)
	case ".xlsx":
		return saveXLSX(rep, path)
	case ".pdf":
		return savePDF(rep, path)
	}
	return util.BadInputf("unsupported report type %q, expected .csv, .xlsx or .pdf", filepath.Ext(path))
}

func saveCSV(rep *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return util.IOFailure("create report file", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Parameter", "Value"}); err != nil {
		return util.IOFailure("write report header", err)
	}
	for _, row := range rep.Rows {
		if err := w.Write([]string{row.Parameter, row.Value}); err != nil {
			return util.IOFailure("write report row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return util.IOFailure("flush report", err)
	}
	return nil
}

func saveXLSX(rep *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetCellValue(sheet, "A1", "Parameter"); err != nil {
		return util.IOFailure("write workbook header", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Value"); err != nil {
		return util.IOFailure("write workbook header", err)
	}
	for i, row := range rep.Rows {
		a, _ := excelize.CoordinatesToCellName(1, i+2)
		b, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheet, a, row.Parameter); err != nil {
			return util.IOFailure("write workbook row", err)
		}
		if err := f.SetCellValue(sheet, b, row.Value); err != nil {
			return util.IOFailure("write workbook row", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return util.IOFailure("save workbook", err)
	}
	return nil
}

func savePDF(rep *Report, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, rep.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(100, 8, "Parameter", "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 8, "Value", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, row := range rep.Rows {
		pdf.CellFormat(100, 8, row.Parameter, "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 8, row.Value, "1", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return util.IOFailure("save pdf", err)
	}
	return nil
}
