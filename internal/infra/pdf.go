package infra

// pdf.go — sales bill PDF generation using go-pdf/fpdf.
// Renders an A5 bill with a line-item table (crates, kg, rates, amount),
// the discount and balance carry-forward section, and the payment status.
// The output file is saved to storagePath/bill_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shanawaz579/ib-fresh-fish-tools-sub001/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateBillPDF renders a sales bill to PDF and returns the file name
// relative to storagePath. The directory is created if needed.
func GenerateBillPDF(bill *model.SalesBill, businessName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("bill_%s.pdf", strings.ReplaceAll(bill.BillNumber, "/", "_"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Sales Bill", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Bill info ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 5, "Bill No: "+bill.BillNumber, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Date: "+bill.BillDate.Format("02/01/2006"), "", 1, "R", false, 0, "")
	if bill.Customer != nil {
		pdf.CellFormat(contentW, 5, "Customer: "+bill.Customer.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Item table ────────────────────────────────────────────────────────────
	colItem := contentW * 0.34
	colQty := contentW * 0.18
	colRate := contentW * 0.26
	colAmt := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colItem, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colRate, 5, "Rate", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colAmt, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, it := range bill.Items {
		name := it.ItemName
		if len(name) > 24 {
			name = name[:23] + "…"
		}
		qty := ""
		rate := ""
		if it.Crates > 0 {
			qty = fmt.Sprintf("%d cr", it.Crates)
			rate = it.RatePerCrate.StringFixed(2) + "/cr"
		}
		if !it.Kg.IsZero() {
			if qty != "" {
				qty += " + "
				rate += " "
			}
			qty += it.Kg.StringFixed(1) + " kg"
			rate += it.RatePerKg.StringFixed(2) + "/kg"
		}
		pdf.CellFormat(colItem, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 5, qty, "", 0, "C", false, 0, "")
		pdf.CellFormat(colRate, 5, rate, "", 0, "C", false, 0, "")
		pdf.CellFormat(colAmt, 5, it.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	labelW := colItem + colQty + colRate

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(labelW, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAmt, 5, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal:", bill.Subtotal.StringFixed(2), false)
	if !bill.Discount.IsZero() {
		row("Discount:", "-"+bill.Discount.StringFixed(2), false)
	}
	row("Total:", bill.Total.StringFixed(2), true)
	if !bill.PreviousBalance.IsZero() {
		row("Previous balance:", bill.PreviousBalance.StringFixed(2), false)
		row("Grand total:", bill.GrandTotal.StringFixed(2), true)
	}
	row("Received:", bill.AmountReceived.StringFixed(2), false)
	row("Balance due:", bill.BalanceDue.StringFixed(2), true)

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 4, "Status: "+bill.PaymentStatus, "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return fileName, nil
}
