package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	cashflow "financeiro-cloud/internal/cashflow/domain"
)

const exportDateLayout = "2006-01-02"

// BuildFluxoPDF renders the daily ledger as a PDF report.
func BuildFluxoPDF(result *cashflow.Result, periodStart, periodEnd string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("fluxo pdf: nil result")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Fluxo de Caixa")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", periodStart, periodEnd))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Opening Balance: %s", result.OpeningBalance.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Closing Realized: %s", result.ClosingRealizedBalance.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Closing Projected: %s", result.ClosingProjectedBalance.StringFixed(2)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(28, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Opening", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Realized In", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Realized Out", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Projected In", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Projected Out", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Closing Real.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(32, 6, "Closing Proj.", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, day := range result.Days {
		pdf.CellFormat(28, 6, day.Date.Format(exportDateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, day.OpeningBalance.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.RealizedInflow.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.RealizedOutflow.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.ProjectedInflow.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.ProjectedOutflow.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.ClosingRealizedBalance.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, day.ClosingProjectedBalance.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFluxoXLSX renders the daily ledger as an XLSX workbook.
func BuildFluxoXLSX(result *cashflow.Result, periodStart, periodEnd string) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("fluxo xlsx: nil result")
	}

	f := excelize.NewFile()
	summarySheet := "summary"
	daysSheet := "days"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(daysSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Fluxo de Caixa")
	_ = f.SetCellValue(summarySheet, "A3", "Period Start")
	_ = f.SetCellValue(summarySheet, "B3", periodStart)
	_ = f.SetCellValue(summarySheet, "A4", "Period End")
	_ = f.SetCellValue(summarySheet, "B4", periodEnd)
	_ = f.SetCellValue(summarySheet, "A5", "Opening Balance")
	_ = f.SetCellValue(summarySheet, "B5", result.OpeningBalance.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A6", "Closing Realized Balance")
	_ = f.SetCellValue(summarySheet, "B6", result.ClosingRealizedBalance.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A7", "Closing Projected Balance")
	_ = f.SetCellValue(summarySheet, "B7", result.ClosingProjectedBalance.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A8", "Total Realized Inflow")
	_ = f.SetCellValue(summarySheet, "B8", result.Totals.RealizedInflow.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A9", "Total Realized Outflow")
	_ = f.SetCellValue(summarySheet, "B9", result.Totals.RealizedOutflow.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A10", "Total Projected Inflow")
	_ = f.SetCellValue(summarySheet, "B10", result.Totals.ProjectedInflow.StringFixed(2))
	_ = f.SetCellValue(summarySheet, "A11", "Total Projected Outflow")
	_ = f.SetCellValue(summarySheet, "B11", result.Totals.ProjectedOutflow.StringFixed(2))

	headers := []string{"Date", "Opening", "Realized Inflow", "Realized Outflow",
		"Projected Inflow", "Projected Outflow", "Closing Realized", "Closing Projected"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(daysSheet, cell, header)
	}
	for i, day := range result.Days {
		row := i + 2
		values := []string{
			day.Date.Format(exportDateLayout),
			day.OpeningBalance.StringFixed(2),
			day.RealizedInflow.StringFixed(2),
			day.RealizedOutflow.StringFixed(2),
			day.ProjectedInflow.StringFixed(2),
			day.ProjectedOutflow.StringFixed(2),
			day.ClosingRealizedBalance.StringFixed(2),
			day.ClosingProjectedBalance.StringFixed(2),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(daysSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
