package models

import "time"

// Invoice statuses used throughout aggregation grouping.
const (
	StatusPaid    = "PAID"
	StatusPending = "PENDING"
	StatusOverdue = "OVERDUE"
)

// Invoice represents a payable invoice from a vendor to a customer.
// Dates are stored as ISO strings (YYYY-MM-DD).
type Invoice struct {
	ID            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	VendorID      int       `json:"vendor_id"`
	CustomerID    int       `json:"customer_id"`
	IssueDate     string    `json:"issue_date"`
	DueDate       *string   `json:"due_date"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	Category      *string   `json:"category"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	// Computed fields
	VendorName   *string    `json:"vendor_name,omitempty"`
	CustomerName *string    `json:"customer_name,omitempty"`
	LineItems    []LineItem `json:"line_items,omitempty"`
	Payments     []Payment  `json:"payments,omitempty"`
}

// LineItem is a single billed line of an invoice.
type LineItem struct {
	ID          int     `json:"id"`
	InvoiceID   int     `json:"invoice_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// InvoiceInput is used for creating/updating invoices. Line items are only
// consumed on create.
type InvoiceInput struct {
	InvoiceNumber string          `json:"invoice_number"`
	VendorID      int             `json:"vendor_id"`
	CustomerID    int             `json:"customer_id"`
	IssueDate     string          `json:"issue_date"`
	DueDate       *string         `json:"due_date"`
	TotalAmount   float64         `json:"total_amount"`
	Status        string          `json:"status"`
	Category      *string         `json:"category"`
	Description   *string         `json:"description"`
	LineItems     []LineItemInput `json:"line_items"`
}

// LineItemInput is a line item supplied with an invoice create request.
type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

func (i *InvoiceInput) Validate() string {
	if i.InvoiceNumber == "" {
		return "invoice_number is required"
	}
	if i.VendorID <= 0 {
		return "vendor_id is required"
	}
	if i.CustomerID <= 0 {
		return "customer_id is required"
	}
	if _, err := time.Parse("2006-01-02", i.IssueDate); err != nil {
		return "issue_date must be a valid date (YYYY-MM-DD)"
	}
	if i.DueDate != nil {
		if _, err := time.Parse("2006-01-02", *i.DueDate); err != nil {
			return "due_date must be a valid date (YYYY-MM-DD)"
		}
	}
	if i.TotalAmount < 0 {
		return "total_amount must be non-negative"
	}
	switch i.Status {
	case "", StatusPaid, StatusPending, StatusOverdue:
	default:
		return "status must be one of: PAID, PENDING, OVERDUE"
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	return ""
}
