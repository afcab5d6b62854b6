// Package seed imports extracted invoice records into the database and
// derives the fields the extraction pipeline does not provide: status,
// missing due dates, and the invoice category.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Record is one extracted invoice in the import file.
type Record struct {
	VendorName      string     `json:"vendor_name"`
	VendorAddress   *string    `json:"vendor_address"`
	CustomerName    string     `json:"customer_name"`
	CustomerAddress *string    `json:"customer_address"`
	InvoiceID       string     `json:"invoice_id"`
	InvoiceDate     string     `json:"invoice_date"`
	DueDate         *string    `json:"due_date"`
	Total           float64    `json:"total"`
	DocumentType    string     `json:"document_type"`
	LineItems       []LineItem `json:"line_items"`
	Payment         *Payment   `json:"payment"`
}

// LineItem is one billed line of an imported record.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Payment is the optional settlement block of an imported record.
type Payment struct {
	Amount    *float64 `json:"amount"`
	Date      *string  `json:"date"`
	Method    *string  `json:"method"`
	Reference *string  `json:"reference"`
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeMethod converts a payment method to upper snake case
// ("bank transfer" -> "BANK_TRANSFER").
func NormalizeMethod(method string) string {
	return whitespaceRun.ReplaceAllString(strings.ToUpper(strings.TrimSpace(method)), "_")
}

// Run clears the invoice data, imports every record in the given file, and
// upserts the demo users. Records without a usable total are skipped; a
// record that fails to insert is logged and skipped without aborting the
// import. Returns the number of invoices created.
func Run(ctx context.Context, db *sql.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}
	slog.Info("starting database seed", "records", len(records))

	// Clear existing data, children first
	for _, table := range []string{"payments", "line_items", "invoices", "vendors", "customers"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	vendorIDs := map[string]int{}
	customerIDs := map[string]int{}
	processed := 0

	for _, rec := range records {
		total := math.Abs(rec.Total)
		if total == 0 {
			continue
		}
		if err := importRecord(ctx, db, rec, total, processed, vendorIDs, customerIDs); err != nil {
			slog.Error("skipping record", "invoice_id", rec.InvoiceID, "error", err)
			continue
		}
		processed++
		if processed%10 == 0 {
			slog.Info("seed progress", "invoices", processed)
		}
	}

	if err := upsertDemoUsers(ctx, db); err != nil {
		return processed, err
	}
	return processed, nil
}

func importRecord(ctx context.Context, db *sql.DB, rec Record, total float64, index int,
	vendorIDs, customerIDs map[string]int) error {

	vendorName := rec.VendorName
	if vendorName == "" {
		vendorName = "Unknown Vendor"
	}
	customerName := rec.CustomerName
	if customerName == "" {
		customerName = "Unknown Customer"
	}

	issueDate := parseDate(rec.InvoiceDate)

	// Spread missing due dates over 30-90 days after issue
	var dueDate string
	if rec.DueDate != nil && *rec.DueDate != "" {
		dueDate = parseDate(*rec.DueDate).Format("2006-01-02")
	} else {
		dueDate = issueDate.AddDate(0, 0, 30+index%60).Format("2006-01-02")
	}

	// Varied status distribution by running index
	status := "PENDING"
	if index%3 == 0 {
		status = "PAID"
	} else if index%5 == 0 {
		status = "OVERDUE"
	}

	descriptions := make([]string, 0, len(rec.LineItems))
	for _, li := range rec.LineItems {
		descriptions = append(descriptions, li.Description)
	}
	category := Classify(descriptions, vendorName)

	invoiceNumber := fmt.Sprintf("INV-%d-%d", time.Now().UnixMilli(), index)
	if rec.InvoiceID != "" {
		invoiceNumber = fmt.Sprintf("INV-%s-%d", rec.InvoiceID, index)
	}

	description := rec.DocumentType
	if description == "" {
		description = "Invoice"
	}

	vendorID, err := findOrCreateParty(ctx, db, "vendors", vendorName, rec.VendorAddress, vendorIDs)
	if err != nil {
		return err
	}
	customerID, err := findOrCreateParty(ctx, db, "customers", customerName, rec.CustomerAddress, customerIDs)
	if err != nil {
		return err
	}

	var invoiceID int
	err = db.QueryRowContext(ctx, `INSERT INTO invoices (invoice_number, vendor_id, customer_id, issue_date,
		due_date, total_amount, status, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		invoiceNumber, vendorID, customerID, issueDate.Format("2006-01-02"), dueDate,
		total, status, category, description).Scan(&invoiceID)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}

	for _, li := range rec.LineItems {
		desc := li.Description
		if desc == "" {
			desc = "Line item"
		}
		qty := math.Abs(li.Quantity)
		if qty == 0 {
			qty = 1
		}
		unitPrice := math.Abs(li.UnitPrice)
		totalPrice := math.Abs(li.TotalPrice)
		if totalPrice == 0 {
			totalPrice = unitPrice * qty
		}
		_, err = db.ExecContext(ctx, `INSERT INTO line_items (invoice_id, description, quantity, unit_price, total_price)
			VALUES (?, ?, ?, ?, ?)`, invoiceID, desc, qty, unitPrice, totalPrice)
		if err != nil {
			return fmt.Errorf("inserting line item: %w", err)
		}
	}

	if status == "PAID" {
		amount := total
		paymentDate := time.Now().Format("2006-01-02")
		method := "BANK_TRANSFER"
		var reference *string
		if p := rec.Payment; p != nil {
			if p.Amount != nil {
				amount = *p.Amount
			}
			if p.Date != nil && *p.Date != "" {
				paymentDate = parseDate(*p.Date).Format("2006-01-02")
			}
			if p.Method != nil && *p.Method != "" {
				method = NormalizeMethod(*p.Method)
			}
			reference = p.Reference
		}
		_, err = db.ExecContext(ctx, `INSERT INTO payments (invoice_id, amount, payment_date, payment_method, reference)
			VALUES (?, ?, ?, ?, ?)`, invoiceID, amount, paymentDate, method, reference)
		if err != nil {
			return fmt.Errorf("inserting payment: %w", err)
		}
	}
	return nil
}

func findOrCreateParty(ctx context.Context, db *sql.DB, table, name string, address *string,
	cache map[string]int) (int, error) {

	if id, ok := cache[name]; ok {
		return id, nil
	}
	var id int
	err := db.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRowContext(ctx, "INSERT INTO "+table+" (name, address) VALUES (?, ?) RETURNING id",
			name, address).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("resolving %s %q: %w", table, name, err)
	}
	cache[name] = id
	return id, nil
}

func upsertDemoUsers(ctx context.Context, db *sql.DB) error {
	demo := []struct {
		name  string
		email string
		role  string
	}{
		{"Demo Admin", "admin@demo.com", "ADMIN"},
		{"Demo User", "user@demo.com", "USER"},
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, u := range demo {
		_, err := db.ExecContext(ctx, `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)
			ON CONFLICT(email) DO NOTHING`, u.name, u.email, string(hash), u.role)
		if err != nil {
			return fmt.Errorf("upserting demo user %s: %w", u.email, err)
		}
	}
	slog.Info("demo users ready", "admin", "admin@demo.com")
	return nil
}

// parseDate accepts the date formats seen in extraction output and falls back
// to today for anything unparseable.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
