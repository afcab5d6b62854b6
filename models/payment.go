package models

import "time"

// Payment records a settlement against an invoice. The method is normalized
// to upper snake case (e.g. BANK_TRANSFER).
type Payment struct {
	ID            int       `json:"id"`
	InvoiceID     int       `json:"invoice_id"`
	Amount        float64   `json:"amount"`
	PaymentDate   string    `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	Reference     *string   `json:"reference"`
	CreatedAt     time.Time `json:"created_at"`
}
