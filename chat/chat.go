// Package chat answers natural-language questions about the invoice data by
// classifying them against a fixed table of named intents, each backed by a
// canned aggregate query. The literal SQL behind every answer is echoed back
// so the caller can display what was actually asked of the database.
package chat

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
)

// Answer is the response to a chat question.
type Answer struct {
	SQL     string           `json:"sql"`
	Results []map[string]any `json:"results"`
	Message string           `json:"message"`
}

// intent is one named canned query. Intents are evaluated in table order and
// the first match wins.
type intent struct {
	name  string
	match func(q string) bool
	run   func(ctx context.Context, db *sql.DB) (Answer, error)
}

var intents = []intent{
	{
		name: "total_revenue",
		match: func(q string) bool {
			return strings.Contains(q, "total") &&
				(strings.Contains(q, "revenue") || strings.Contains(q, "spend"))
		},
		run: totalRevenue,
	},
	{
		name: "top_vendors",
		match: func(q string) bool {
			return strings.Contains(q, "vendor") || strings.Contains(q, "top")
		},
		run: topVendors,
	},
	{
		name: "overdue_invoices",
		match: func(q string) bool {
			return strings.Contains(q, "overdue")
		},
		run: overdueInvoices,
	},
}

// Classify returns the name of the intent a question maps to, or
// "invoice_summary" for the fallback.
func Classify(question string) string {
	q := strings.ToLower(question)
	for _, in := range intents {
		if in.match(q) {
			return in.name
		}
	}
	return "invoice_summary"
}

// Ask answers a question using the first matching intent, falling back to the
// overall invoice summary.
func Ask(ctx context.Context, db *sql.DB, question string) (Answer, error) {
	q := strings.ToLower(question)
	for _, in := range intents {
		if in.match(q) {
			return in.run(ctx, db)
		}
	}
	return invoiceSummary(ctx, db)
}

func totalRevenue(ctx context.Context, db *sql.DB) (Answer, error) {
	var total float64
	err := db.QueryRowContext(ctx, "SELECT COALESCE(SUM(total_amount), 0) FROM invoices").Scan(&total)
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		SQL:     "SELECT SUM(total_amount) AS total_revenue FROM invoices;",
		Results: []map[string]any{{"total_revenue": total}},
		Message: "Found 1 result",
	}, nil
}

func topVendors(ctx context.Context, db *sql.DB) (Answer, error) {
	rows, err := db.QueryContext(ctx, `SELECT v.name, SUM(i.total_amount) AS spend
		FROM invoices i JOIN vendors v ON i.vendor_id = v.id
		GROUP BY v.name ORDER BY spend DESC LIMIT 5`)
	if err != nil {
		return Answer{}, err
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		var name string
		var spend float64
		if err := rows.Scan(&name, &spend); err != nil {
			return Answer{}, err
		}
		results = append(results, map[string]any{"name": name, "spend": spend})
	}
	if err := rows.Err(); err != nil {
		return Answer{}, err
	}
	return Answer{
		SQL: "SELECT v.name, SUM(i.total_amount) AS spend FROM invoices i " +
			"JOIN vendors v ON i.vendor_id = v.id GROUP BY v.name ORDER BY spend DESC LIMIT 5;",
		Results: results,
		Message: fmt.Sprintf("Found %d results", len(results)),
	}, nil
}

func overdueInvoices(ctx context.Context, db *sql.DB) (Answer, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT invoice_number, total_amount FROM invoices WHERE status = 'OVERDUE'")
	if err != nil {
		return Answer{}, err
	}
	defer rows.Close()

	results := []map[string]any{}
	for rows.Next() {
		var number string
		var amount float64
		if err := rows.Scan(&number, &amount); err != nil {
			return Answer{}, err
		}
		results = append(results, map[string]any{"invoice_number": number, "total_amount": amount})
	}
	if err := rows.Err(); err != nil {
		return Answer{}, err
	}
	return Answer{
		SQL:     "SELECT invoice_number, total_amount FROM invoices WHERE status = 'OVERDUE';",
		Results: results,
		Message: fmt.Sprintf("Found %d results", len(results)),
	}, nil
}

func invoiceSummary(ctx context.Context, db *sql.DB) (Answer, error) {
	var count int
	var total, avg float64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total_amount), 0), COALESCE(AVG(total_amount), 0)
		FROM invoices`).Scan(&count, &total, &avg)
	if err != nil {
		return Answer{}, err
	}
	return Answer{
		SQL: "SELECT COUNT(*) AS total_invoices, SUM(total_amount) AS total_revenue, " +
			"AVG(total_amount) AS avg_invoice FROM invoices;",
		Results: []map[string]any{{
			"total_invoices": count,
			"total_revenue":  total,
			"avg_invoice":    math.Round(avg),
		}},
		Message: "Invoice summary",
	}, nil
}
