package certpdf

import (
	"bytes"
	"testing"
	"time"
)

func TestRender(t *testing.T) {
	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	data := Data{
		RecipientName:     "Ada Lovelace",
		CertificationName: "MLOps Fundamentals",
		CertificationType: "SKILL_TRACK",
		IssueDate:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:        &expiry,
		CertificateID:     "3f1d0a6e-0000-4000-8000-abcdefabcdef",
		VerificationURL:   "https://skillytics.example/verify-certificate/3f1d0a6e",
		Score:             92,
	}

	out, err := Render(data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF (got leading bytes %q)", out[:4])
	}
	if len(out) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(out))
	}
}

func TestRenderWithoutOptionalFields(t *testing.T) {
	out, err := Render(Data{
		RecipientName:     "No Frills",
		CertificationName: "Intro Track",
		CertificationType: "COURSE",
		IssueDate:         time.Now(),
		CertificateID:     "id",
		VerificationURL:   "https://example.com/v/id",
	})
	if err != nil {
		t.Fatalf("Render without score/expiry: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}
