package handlers

import (
	"net/http"
	"time"

	"github.com/david578-arc/invoice-analytics/analytics"
)

// loadInvoiceFacts reads the invoice projection the aggregation service
// works on. Dates that fail to parse are treated as the zero time rather
// than failing the whole aggregation.
func loadInvoiceFacts() ([]analytics.Invoice, error) {
	rows, err := DB.Query(`SELECT i.issue_date, i.due_date, i.total_amount, i.status, i.category, v.name
		FROM invoices i JOIN vendors v ON i.vendor_id = v.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Invoice
	for rows.Next() {
		var issue string
		var due *string
		var inv analytics.Invoice
		if err := rows.Scan(&issue, &due, &inv.TotalAmount, &inv.Status, &inv.Category, &inv.VendorName); err != nil {
			return nil, err
		}
		inv.IssueDate, _ = time.Parse("2006-01-02", issue)
		if due != nil {
			if d, err := time.Parse("2006-01-02", *due); err == nil {
				inv.DueDate = &d
			}
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func loadPaymentFacts() ([]analytics.Payment, error) {
	rows, err := DB.Query(`SELECT payment_method, amount FROM payments`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Payment
	for rows.Next() {
		var p analytics.Payment
		if err := rows.Scan(&p.Method, &p.Amount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadVendorNames() ([]string, error) {
	rows, err := DB.Query(`SELECT name FROM vendors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// GetStats returns the dashboard summary
// @Summary      Summary stats
// @Description  Total revenue, per-status sums and counts, average invoice value, and document count.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analytics.Stats
// @Router       /stats [get]
// @Security     BearerAuth
func GetStats(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var documents int
	if err := DB.QueryRow("SELECT COUNT(*) FROM documents").Scan(&documents); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(invoices, documents))
}

// GetInvoiceTrends returns the monthly invoice trend
// @Summary      Monthly invoice trend
// @Description  Per-month invoice count and summed value, in chronological order.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.TrendPoint
// @Router       /invoice-trends [get]
// @Security     BearerAuth
func GetInvoiceTrends(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.MonthlyTrend(invoices))
}

// GetCategorySpend returns spend per category
// @Summary      Category spend
// @Description  Summed spend per non-null category.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.CategorySpend
// @Router       /category-spend [get]
// @Security     BearerAuth
func GetCategorySpend(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.CategoryBreakdown(invoices))
}

// GetCategories returns the distinct invoice categories
// @Summary      List categories
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  string
// @Router       /categories [get]
// @Security     BearerAuth
func GetCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(`SELECT DISTINCT category FROM invoices WHERE category IS NOT NULL ORDER BY category`)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		categories = append(categories, c)
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetDepartments returns the department/budget rollup
// @Summary      Departments
// @Description  Category rollup with synthetic budget and paid/pending split; uncategorized invoices land in "General".
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.Department
// @Router       /departments [get]
// @Security     BearerAuth
func GetDepartments(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.Departments(invoices))
}

// GetCashOutflow returns the near-term payable forecast
// @Summary      Cash outflow forecast
// @Description  Outstanding invoice amounts bucketed into four due-date windows over the next 30 days.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.OutflowBucket
// @Router       /cash-outflow [get]
// @Security     BearerAuth
func GetCashOutflow(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.CashOutflow(invoices, time.Now()))
}

// GetPaymentMethods returns the payment method breakdown
// @Summary      Payment methods
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.MethodBreakdown
// @Router       /analytics/payment-methods [get]
// @Security     BearerAuth
func GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	payments, err := loadPaymentFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.PaymentMethods(payments))
}

// GetStatusBreakdown returns per-status sums and counts
// @Summary      Invoice status breakdown
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.StatusCount
// @Router       /analytics/invoice-status-breakdown [get]
// @Security     BearerAuth
func GetStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.StatusBreakdown(invoices))
}

// GetMonthlyRevenue returns the status-split monthly revenue trend
// @Summary      Monthly revenue
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.MonthRevenue
// @Router       /analytics/monthly-revenue [get]
// @Security     BearerAuth
func GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.MonthlyRevenue(invoices))
}

// GetVendorPerformance returns per-vendor spend profiles
// @Summary      Vendor performance
// @Description  Total spend, paid amount, invoice count, average value, and payment rate per vendor.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  analytics.VendorPerformance
// @Router       /analytics/vendor-performance [get]
// @Security     BearerAuth
func GetVendorPerformance(w http.ResponseWriter, r *http.Request) {
	names, err := loadVendorNames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.VendorPerformances(names, invoices))
}

// backupSummary is the body returned by CreateBackup.
type backupSummary struct {
	Timestamp string         `json:"timestamp"`
	Status    string         `json:"status"`
	Summary   map[string]int `json:"summary"`
}

// CreateBackup records a backup snapshot of entity counts
// @Summary      Create backup
// @Tags         backup
// @Produce      json
// @Success      200  {object}  backupSummary
// @Router       /backup [post]
// @Security     BearerAuth
func CreateBackup(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for _, table := range []string{"invoices", "vendors", "customers", "users", "documents"} {
		var n int
		if err := DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts[table] = n
	}
	writeJSON(w, http.StatusOK, backupSummary{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    "completed",
		Summary:   counts,
	})
}
