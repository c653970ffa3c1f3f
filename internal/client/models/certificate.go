package models

// CertificateLookup is the response of GET /api/certificates/lookup/{shortCode}.
// Only the certification id is needed to build the verification path.
type CertificateLookup struct {
	CertificationID string `json:"certification_id"`
}

// Enrollment is the response of POST /enrollment/initiate. The payment URL
// points at the external gateway checkout page.
type Enrollment struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}
