// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// CertificateIssuedQueue is the durable queue certificate render jobs go
// through. Rendering happens off the request path so claiming stays fast and
// the webhook-style retry semantics apply: redelivery of an already-rendered
// certificate is a no-op.
const CertificateIssuedQueue = "certificate.issued"

// CertificateIssuedEvent is published when a certification claim succeeds.
// It carries enough for the renderer to work without re-reading the claim
// request.
type CertificateIssuedEvent struct {
	UserID          uint   `json:"user_id"`
	CertificationID string `json:"certification_id"`
	CertificateHash string `json:"certificate_hash"`
	IssuedAt        string `json:"issued_at"`
}
