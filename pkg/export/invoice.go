package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Invoice holds everything a fee receipt renders: the school letterhead, the
// student block, the single payment line item and the computed balance.
type Invoice struct {
	SchoolName    string
	SchoolAddress string
	SchoolPhone   string
	SchoolEmail   string

	StudentName  string
	StudentCode  string
	Class        string
	Section      string
	FatherName   string
	StudentPhone string

	AcademicYear     string
	PaymentDate      time.Time
	Mode             string
	Remarks          string
	AmountPaid       float64
	RemainingBalance float64

	CurrencyUnit string
	GeneratedAt  time.Time
}

// InvoiceRenderer produces printable fee receipts as standalone PDF
// documents, so printing never touches shared page state.
type InvoiceRenderer struct{}

// NewInvoiceRenderer constructs an invoice renderer.
func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

// Render lays out the receipt and returns the PDF bytes.
func (r *InvoiceRenderer) Render(inv Invoice) ([]byte, error) {
	if inv.SchoolName == "" {
		return nil, fmt.Errorf("invoice requires a school name")
	}
	unit := inv.CurrencyUnit
	if unit == "" {
		unit = "INR"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, inv.SchoolName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if inv.SchoolAddress != "" {
		pdf.CellFormat(0, 5, inv.SchoolAddress, "", 1, "C", false, 0, "")
	}
	contact := fmt.Sprintf("Phone: %s | Email: %s", inv.SchoolPhone, inv.SchoolEmail)
	pdf.CellFormat(0, 5, contact, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "BU", 12)
	pdf.CellFormat(0, 7, "Fee Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Date of Payment: %s", inv.PaymentDate.UTC().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	left := [][2]string{
		{"Academic Year", inv.AcademicYear},
		{"Payment Mode", inv.Mode},
		{"Remarks", orDash(inv.Remarks)},
	}
	right := [][2]string{
		{"Student Name", inv.StudentName},
		{"Student ID", inv.StudentCode},
		{"Class", fmt.Sprintf("%s - %s", inv.Class, inv.Section)},
		{"Father's Name", inv.FatherName},
		{"Phone", orDash(inv.StudentPhone)},
	}
	rows := len(right)
	yStart := pdf.GetY()
	for _, pair := range left {
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 5, pair[0]+":", "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(60, 5, pair[1], "", 1, "", false, 0, "")
	}
	pdf.SetY(yStart)
	for _, pair := range right {
		pdf.SetX(105)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(30, 5, pair[0]+":", "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(60, 5, pair[1], "", 1, "", false, 0, "")
	}
	pdf.SetY(yStart + float64(rows)*5 + 6)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(20, 7, "S.No.", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 7, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("Amount (%s)", unit), "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(20, 7, "1", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 7, "Fee Payment", "1", 0, "", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", inv.AmountPaid), "1", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(130, 7, "Total Paid", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", inv.AmountPaid), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	balanceLine := fmt.Sprintf("Remaining Balance as on %s: %s %.2f",
		inv.PaymentDate.UTC().Format("2006-01-02"), unit, inv.RemainingBalance)
	pdf.CellFormat(0, 6, balanceLine, "", 1, "", false, 0, "")
	pdf.Ln(6)

	generated := inv.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFont("Arial", "I", 7)
	pdf.CellFormat(0, 4, "* This is a computer-generated receipt and does not require a signature.", "", 1, "", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Receipt generated on %s", generated.Format("2006-01-02 15:04")), "", 1, "", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
