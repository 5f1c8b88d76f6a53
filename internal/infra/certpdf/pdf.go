// Package certpdf renders certification credentials as landscape A4 PDFs.
package certpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

var (
	colorBorder    = [3]int{37, 99, 235}
	colorInnerLine = [3]int{147, 197, 253}
	colorHeading   = [3]int{30, 64, 175}
	colorName      = [3]int{30, 58, 138}
	colorBody      = [3]int{55, 65, 81}
	colorMuted     = [3]int{156, 163, 175}
	colorScore     = [3]int{5, 150, 105}
)

// Data carries everything the renderer needs; it has no database access.
type Data struct {
	RecipientName     string
	CertificationName string
	CertificationType string
	IssueDate         time.Time
	ExpiryDate        *time.Time
	CertificateID     string
	VerificationURL   string
	Score             float64
}

// Render produces the certificate PDF bytes.
func Render(data Data) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Double border
	pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, w-16, h-16, "D")
	pdf.SetDrawColor(colorInnerLine[0], colorInnerLine[1], colorInnerLine[2])
	pdf.SetLineWidth(0.4)
	pdf.Rect(12, 12, w-24, h-24, "D")

	// Header
	pdf.SetTextColor(colorHeading[0], colorHeading[1], colorHeading[2])
	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetXY(0, 24)
	pdf.CellFormat(w, 14, "Skillytics", "", 1, "C", false, 0, "")

	pdf.SetTextColor(colorMuted[0], colorMuted[1], colorMuted[2])
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(w, 8, "CERTIFICATE OF ACHIEVEMENT", "", 1, "C", false, 0, "")

	pdf.SetDrawColor(colorBorder[0], colorBorder[1], colorBorder[2])
	pdf.SetLineWidth(0.6)
	pdf.Line(w/2-50, 50, w/2+50, 50)

	// Recipient
	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(0, 58)
	pdf.CellFormat(w, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetTextColor(colorName[0], colorName[1], colorName[2])
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(w, 14, data.RecipientName, "", 1, "C", false, 0, "")

	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(w, 9, "has successfully completed the requirements for", "", 1, "C", false, 0, "")

	pdf.SetTextColor(colorBorder[0], colorBorder[1], colorBorder[2])
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(w, 12, data.CertificationName, "", 1, "C", false, 0, "")

	pdf.SetTextColor(colorHeading[0], colorHeading[1], colorHeading[2])
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(w, 8, strings.ToUpper(strings.ReplaceAll(data.CertificationType, "_", " ")), "", 1, "C", false, 0, "")

	y := pdf.GetY() + 4
	if data.Score > 0 {
		pdf.SetTextColor(colorScore[0], colorScore[1], colorScore[2])
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetXY(0, y)
		pdf.CellFormat(w, 7, fmt.Sprintf("Score: %.0f%%", data.Score), "", 1, "C", false, 0, "")
		y = pdf.GetY()
	}

	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(0, y+2)
	pdf.CellFormat(w, 7, "Awarded on "+data.IssueDate.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	if data.ExpiryDate != nil {
		pdf.SetTextColor(220, 38, 38)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(w, 6, "Valid until "+data.ExpiryDate.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	}

	// Signatures
	sigY := h - 38.0
	pdf.SetDrawColor(colorMuted[0], colorMuted[1], colorMuted[2])
	pdf.SetLineWidth(0.3)
	pdf.Line(35, sigY, 105, sigY)
	pdf.Line(w-105, sigY, w-35, sigY)

	pdf.SetTextColor(colorBody[0], colorBody[1], colorBody[2])
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(35, sigY+2)
	pdf.CellFormat(70, 5, "Skillytics Director", "", 0, "C", false, 0, "")
	pdf.SetXY(w-105, sigY+2)
	pdf.CellFormat(70, 5, "Chief Learning Officer", "", 0, "C", false, 0, "")

	// Verification footer
	pdf.SetTextColor(colorMuted[0], colorMuted[1], colorMuted[2])
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(16, h-20)
	pdf.CellFormat(0, 4, "Certificate ID: "+data.CertificateID, "", 1, "L", false, 0, "")
	pdf.SetX(16)
	pdf.CellFormat(0, 4, "Verify at: "+data.VerificationURL, "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("certificate render failed: %w", err)
	}
	return buf.Bytes(), nil
}
