package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"skillytics-api/database"
	"skillytics-api/internal/domain/certs"
	"skillytics-api/internal/domain/users"
	"skillytics-api/internal/infra/certpdf"
)

// StartCertificateConsumer runs the PDF render loop in a goroutine. If the
// broker is unavailable it retries with backoff; the API keeps serving,
// downloads just fall back to lazy rendering.
func StartCertificateConsumer(certificatesDir string) {
	go func() {
		for {
			if err := consume(certificatesDir); err != nil {
				log.Printf("certificate consumer: %v (reconnecting in 5s)", err)
			}
			time.Sleep(5 * time.Second)
		}
	}()
}

func consume(certificatesDir string) error {
	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(CertificateIssuedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(CertificateIssuedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	log.Println("📜 certificate consumer listening on", CertificateIssuedQueue)

	for d := range deliveries {
		var event CertificateIssuedEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			log.Printf("certificate consumer: bad payload, dropping: %v", err)
			_ = d.Nack(false, false)
			continue
		}

		if err := RenderCertificate(event.CertificateHash, certificatesDir); err != nil {
			log.Printf("certificate consumer: render %s failed: %v", event.CertificateHash, err)
			_ = d.Nack(false, true) // requeue for retry
			continue
		}
		_ = d.Ack(false)
	}

	return fmt.Errorf("delivery channel closed")
}

// RenderCertificate renders and stores the PDF for an issued credential.
// Idempotent: an already-rendered certificate returns immediately, so queue
// redelivery and the lazy download path can both call it safely.
func RenderCertificate(certificateHash string, certificatesDir string) error {
	var uc certs.UserCertification
	if err := database.DB.Where("certificate_hash = ?", certificateHash).First(&uc).Error; err != nil {
		return fmt.Errorf("certification not found: %w", err)
	}
	if uc.PDFPath != nil && *uc.PDFPath != "" {
		return nil
	}

	var cert certs.Certification
	if err := database.DB.Where("id = ?", uc.CertificationID).First(&cert).Error; err != nil {
		return fmt.Errorf("certification definition not found: %w", err)
	}
	var user users.User
	if err := database.DB.Where("id = ?", uc.UserID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	pdfBytes, err := certpdf.Render(certpdf.Data{
		RecipientName:     user.Name,
		CertificationName: cert.Name,
		CertificationType: cert.Type,
		IssueDate:         uc.IssueDate,
		ExpiryDate:        uc.ExpiryDate,
		CertificateID:     uc.CertificateHash,
		VerificationURL:   uc.VerificationURL,
		Score:             uc.Score,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(certificatesDir, 0o755); err != nil {
		return fmt.Errorf("create certificates dir: %w", err)
	}
	filename := uc.CertificateHash + ".pdf"
	if err := os.WriteFile(filepath.Join(certificatesDir, filename), pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	relPath := "/certificates/" + filename
	return database.DB.Model(&certs.UserCertification{}).
		Where("id = ?", uc.ID).
		Update("pdf_path", relPath).Error
}
