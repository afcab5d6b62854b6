package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david578-arc/invoice-analytics/db"
)

const seedFixture = `[
	{
		"vendor_name": "Initech Software GmbH",
		"customer_name": "Demo Corp",
		"invoice_id": "A-1",
		"invoice_date": "2024-01-10",
		"total": 500,
		"document_type": "Rechnung",
		"line_items": [
			{"description": "Software license", "quantity": 1, "unit_price": 500, "total_price": 500}
		],
		"payment": {"amount": 500, "date": "2024-01-20", "method": "bank transfer", "reference": "REF-1"}
	},
	{
		"vendor_name": "Initech Software GmbH",
		"customer_name": "Demo Corp",
		"invoice_id": "A-2",
		"invoice_date": "15.02.2024",
		"due_date": "2024-03-15",
		"total": -250,
		"line_items": []
	},
	{
		"vendor_name": "Empty GmbH",
		"customer_name": "Demo Corp",
		"invoice_id": "A-3",
		"invoice_date": "2024-03-01",
		"total": 0,
		"line_items": []
	}
]`

func TestRun(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(seedFixture), 0o644))

	ctx := context.Background()
	processed, err := Run(ctx, database, path)
	require.NoError(t, err)

	// Zero-total record is skipped; the negative total imports as abs value.
	assert.Equal(t, 2, processed)

	var invoiceCount, vendorCount int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&invoiceCount))
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM vendors").Scan(&vendorCount))
	assert.Equal(t, 2, invoiceCount)
	assert.Equal(t, 1, vendorCount)

	t.Run("first record", func(t *testing.T) {
		var number, issue, due, status, category string
		var total float64
		require.NoError(t, database.QueryRow(`SELECT invoice_number, issue_date, due_date, total_amount,
			status, category FROM invoices WHERE invoice_number LIKE 'INV-A-1%'`).
			Scan(&number, &issue, &due, &total, &status, &category))
		assert.Equal(t, "2024-01-10", issue)
		// Index 0 is always PAID; missing due date lands 30 days out.
		assert.Equal(t, "PAID", status)
		assert.Equal(t, "2024-02-09", due)
		assert.Equal(t, float64(500), total)
		assert.Equal(t, "Information Technology", category)

		var method string
		require.NoError(t, database.QueryRow(`SELECT p.payment_method FROM payments p
			JOIN invoices i ON p.invoice_id = i.id WHERE i.invoice_number = ?`, number).Scan(&method))
		assert.Equal(t, "BANK_TRANSFER", method)
	})

	t.Run("second record", func(t *testing.T) {
		var issue, due, status, category string
		var total float64
		require.NoError(t, database.QueryRow(`SELECT issue_date, due_date, total_amount, status, category
			FROM invoices WHERE invoice_number LIKE 'INV-A-2%'`).
			Scan(&issue, &due, &total, &status, &category))
		assert.Equal(t, "2024-02-15", issue)
		assert.Equal(t, "2024-03-15", due)
		assert.Equal(t, float64(250), total)
		assert.Equal(t, "PENDING", status)
		// No line items short-circuits classification, even though the
		// vendor name carries an IT hint.
		assert.Equal(t, "General", category)
	})

	t.Run("demo users", func(t *testing.T) {
		var count int
		require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users
			WHERE email IN ('admin@demo.com', 'user@demo.com')`).Scan(&count))
		assert.Equal(t, 2, count)
	})

	t.Run("rerun keeps demo users and replaces data", func(t *testing.T) {
		processed, err := Run(ctx, database, path)
		require.NoError(t, err)
		assert.Equal(t, 2, processed)

		var users, invoices int
		require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM users").Scan(&users))
		require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM invoices").Scan(&invoices))
		assert.Equal(t, 2, users)
		assert.Equal(t, 2, invoices)
	})
}

func TestRunMissingFile(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	_, err = Run(context.Background(), database, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
