package infra

// pdf.go — Shift report PDF generation using go-pdf/fpdf.
// Produces a one-page A5 cash reconciliation summary:
//   - Business name header
//   - Shift date, type, open/close times
//   - Totals table (opening, sales, expenses, vouchers)
//   - Expected vs counted cash, variance and classification
//
// The output file is saved to storagePath/shift_{date}_{type}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dukaledger/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateShiftReportPDF renders the reconciliation summary for a closed
// shift. company may be nil (fresh install). Returns the absolute path to the
// generated file.
func GenerateShiftReportPDF(shift *model.Shift, company *model.CompanyProfile, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("shift_%s_%s.pdf", shift.ShiftDate.Format("2006-01-02"), shift.ShiftType)
	filePath := filepath.Join(storagePath, fileName)

	name := "Shift Report"
	currency := "KES"
	if company != nil {
		if company.Name != "" {
			name = company.Name
		}
		if company.Currency != "" {
			currency = company.Currency
		}
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Shift Cash Reconciliation", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Shift info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s - %s shift", shift.ShiftDate.Format("Mon 02 Jan 2006"), shift.ShiftType), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, "Opened "+shift.OpenedAt.Format("15:04"), "", 1, "L", false, 0, "")
	if shift.ClosedAt != nil {
		pdf.CellFormat(contentW, 4, "Closed "+shift.ClosedAt.Format("15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals table ─────────────────────────────────────────────────────────
	line := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW*0.6, 6, label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, fmt.Sprintf("%s %s", currency, v.StringFixed(2)), "B", 1, "R", false, 0, "")
	}

	line("Opening cash", shift.OpeningCash, false)
	line("Recorded sales", shift.TotalSales, false)
	line("Recorded expenses", shift.TotalExpenses, false)
	line("Vouchers", shift.TotalVouchers, false)
	if shift.NetSales != nil {
		line("Net sales", *shift.NetSales, false)
	}
	pdf.Ln(2)
	if shift.ExpectedCash != nil {
		line("Expected cash", *shift.ExpectedCash, true)
	}
	if shift.ClosingCash != nil {
		line("Counted cash", *shift.ClosingCash, true)
	}
	if shift.Variance != nil {
		line("Variance", *shift.Variance, true)
	}

	if shift.Result != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, strings.ToUpper(*shift.Result), "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
