package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func inv(issue string, amount float64, status string) Invoice {
	return Invoice{IssueDate: date(issue), TotalAmount: amount, Status: status}
}

func TestSummarize(t *testing.T) {
	invoices := []Invoice{
		inv("2024-01-10", 100, "PAID"),
		inv("2024-01-15", 200, "PAID"),
		inv("2024-02-01", 300, "PENDING"),
		inv("2024-02-10", 400, "OVERDUE"),
	}

	s := Summarize(invoices, 7)

	assert.Equal(t, float64(1000), s.TotalRevenue)
	assert.Equal(t, 4, s.TotalInvoices)
	assert.Equal(t, float64(300), s.PaidAmount)
	assert.Equal(t, float64(300), s.PendingAmount)
	assert.Equal(t, float64(400), s.OverdueAmount)
	assert.Equal(t, 2, s.PaidCount)
	assert.Equal(t, 1, s.PendingCount)
	assert.Equal(t, 1, s.OverdueCount)
	assert.Equal(t, 7, s.DocumentsUploaded)
	assert.Equal(t, float64(250), s.AverageInvoiceValue)

	// Revenue partitions across the named buckets when every status is named
	assert.Equal(t, s.TotalRevenue, s.PaidAmount+s.PendingAmount+s.OverdueAmount)
}

func TestSummarizeUnknownStatusCountsTowardTotalOnly(t *testing.T) {
	invoices := []Invoice{
		inv("2024-01-10", 100, "PAID"),
		inv("2024-01-15", 50, "DRAFT"),
	}

	s := Summarize(invoices, 0)

	assert.Equal(t, float64(150), s.TotalRevenue)
	assert.Equal(t, float64(100), s.PaidAmount)
	assert.Equal(t, float64(0), s.PendingAmount)
	assert.Equal(t, float64(0), s.OverdueAmount)
	assert.Equal(t, 1, s.PaidCount)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)

	assert.Equal(t, float64(0), s.TotalRevenue)
	assert.Equal(t, 0, s.TotalInvoices)
	assert.Equal(t, float64(0), s.AverageInvoiceValue)
}

func TestMonthlyTrendChronologicalOrder(t *testing.T) {
	// Input deliberately out of order; "Apr" sorts before "Jan"
	// lexicographically, which must not leak into the output order.
	invoices := []Invoice{
		inv("2024-03-01", 10, "PAID"),
		inv("2023-12-01", 20, "PAID"),
		inv("2024-01-05", 30, "PENDING"),
		inv("2024-01-20", 40, "PENDING"),
		inv("2024-04-02", 50, "PAID"),
	}

	trend := MonthlyTrend(invoices)

	require.Len(t, trend, 4)
	assert.Equal(t, "Dec 2023", trend[0].Month)
	assert.Equal(t, "Jan 2024", trend[1].Month)
	assert.Equal(t, "Mar 2024", trend[2].Month)
	assert.Equal(t, "Apr 2024", trend[3].Month)

	assert.Equal(t, 2, trend[1].Invoices)
	assert.Equal(t, float64(70), trend[1].Value)
}

func TestMonthlyTrendEmpty(t *testing.T) {
	assert.Empty(t, MonthlyTrend(nil))
}

func TestMonthlyRevenueStatusSplit(t *testing.T) {
	invoices := []Invoice{
		inv("2024-01-10", 100, "PAID"),
		inv("2024-01-12", 200, "PENDING"),
		inv("2024-01-20", 300, "OVERDUE"),
		inv("2023-11-01", 50, "PAID"),
	}

	months := MonthlyRevenue(invoices)

	require.Len(t, months, 2)
	assert.Equal(t, "Nov 2023", months[0].Month)
	assert.Equal(t, "Jan 2024", months[1].Month)

	jan := months[1]
	assert.Equal(t, float64(600), jan.Revenue)
	assert.Equal(t, float64(100), jan.Paid)
	assert.Equal(t, float64(200), jan.Pending)
	assert.Equal(t, float64(300), jan.Overdue)
	assert.Equal(t, 3, jan.Count)
}

func TestCategoryBreakdownExcludesUncategorized(t *testing.T) {
	invoices := []Invoice{
		{IssueDate: date("2024-01-01"), TotalAmount: 100, Status: "PAID", Category: strPtr("Marketing")},
		{IssueDate: date("2024-01-02"), TotalAmount: 200, Status: "PAID", Category: strPtr("Marketing")},
		{IssueDate: date("2024-01-03"), TotalAmount: 300, Status: "PAID", Category: strPtr("Legal")},
		{IssueDate: date("2024-01-04"), TotalAmount: 400, Status: "PAID"},
	}

	spend := CategoryBreakdown(invoices)

	require.Len(t, spend, 2)
	assert.Equal(t, CategorySpend{Category: "Legal", Spend: 300}, spend[0])
	assert.Equal(t, CategorySpend{Category: "Marketing", Spend: 300}, spend[1])
}

func TestDepartments(t *testing.T) {
	invoices := []Invoice{
		{IssueDate: date("2024-01-01"), TotalAmount: 600, Status: "PAID", Category: strPtr("Marketing")},
		{IssueDate: date("2024-01-02"), TotalAmount: 300, Status: "PENDING", Category: strPtr("Marketing")},
		{IssueDate: date("2024-01-03"), TotalAmount: 100, Status: "OVERDUE", Category: strPtr("Marketing")},
		{IssueDate: date("2024-01-04"), TotalAmount: 42, Status: "PAID"},
	}

	departments := Departments(invoices)

	require.Len(t, departments, 2)

	general := departments[0]
	assert.Equal(t, "General", general.Name)
	assert.Equal(t, float64(42), general.Spent)

	marketing := departments[1]
	assert.Equal(t, "Marketing", marketing.Name)
	assert.Equal(t, float64(1000), marketing.Spent)
	assert.Equal(t, float64(1200), marketing.Budget)
	assert.Equal(t, 3, marketing.InvoiceCount)
	assert.Equal(t, float64(600), marketing.PaidAmount)
	assert.Equal(t, float64(400), marketing.PendingAmount)
}

func TestTopVendors(t *testing.T) {
	var invoices []Invoice
	// 12 vendors with increasing spend, plus one with zero spend
	for i := 1; i <= 12; i++ {
		invoices = append(invoices, Invoice{
			IssueDate:   date("2024-01-01"),
			TotalAmount: float64(i * 100),
			Status:      "PENDING",
			VendorName:  string(rune('A' + i - 1)),
		})
	}
	invoices = append(invoices, Invoice{IssueDate: date("2024-01-01"), TotalAmount: 0, Status: "PAID", VendorName: "ZeroCo"})

	top := TopVendors(invoices, 10)

	require.Len(t, top, 10)
	assert.Equal(t, "L", top[0].Name)
	assert.Equal(t, float64(1200), top[0].Spend)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Spend, top[i].Spend)
	}
	for _, v := range top {
		assert.Greater(t, v.Spend, float64(0))
		assert.NotEqual(t, "ZeroCo", v.Name)
	}
}

func TestTopVendorsPaidPendingSplit(t *testing.T) {
	invoices := []Invoice{
		{IssueDate: date("2024-01-01"), TotalAmount: 100, Status: "PAID", VendorName: "Acme"},
		{IssueDate: date("2024-01-02"), TotalAmount: 200, Status: "PENDING", VendorName: "Acme"},
		{IssueDate: date("2024-01-03"), TotalAmount: 300, Status: "OVERDUE", VendorName: "Acme"},
	}

	top := TopVendors(invoices, 10)

	require.Len(t, top, 1)
	assert.Equal(t, float64(600), top[0].Spend)
	assert.Equal(t, float64(100), top[0].Paid)
	assert.Equal(t, float64(500), top[0].Pending)
}

func TestCashOutflowBuckets(t *testing.T) {
	today := date("2024-06-15")
	mk := func(dueOffsetDays int, amount float64, status string) Invoice {
		due := today.AddDate(0, 0, dueOffsetDays)
		return Invoice{IssueDate: date("2024-06-01"), DueDate: &due, TotalAmount: amount, Status: status}
	}

	invoices := []Invoice{
		mk(0, 10, "PENDING"),   // due today -> 0-7
		mk(7, 20, "OVERDUE"),   // upper edge of 0-7
		mk(8, 40, "PENDING"),   // lower edge of 8-14
		mk(21, 80, "PENDING"),  // upper edge of 15-21
		mk(30, 160, "OVERDUE"), // upper edge of 22-30
		mk(31, 999, "PENDING"), // past the horizon, dropped
		mk(-3, 999, "OVERDUE"), // already due, dropped
		mk(5, 999, "PAID"),     // paid, not an outflow
		{IssueDate: date("2024-06-01"), TotalAmount: 999, Status: "PENDING"}, // no due date
	}

	buckets := CashOutflow(invoices, today)

	require.Len(t, buckets, 4)
	assert.Equal(t, OutflowBucket{Day: "0-7 days", Value: 30}, buckets[0])
	assert.Equal(t, OutflowBucket{Day: "8-14 days", Value: 40}, buckets[1])
	assert.Equal(t, OutflowBucket{Day: "15-21 days", Value: 80}, buckets[2])
	assert.Equal(t, OutflowBucket{Day: "22-30 days", Value: 160}, buckets[3])
}

func TestCashOutflowEmpty(t *testing.T) {
	buckets := CashOutflow(nil, date("2024-06-15"))

	require.Len(t, buckets, 4)
	for _, b := range buckets {
		assert.Equal(t, float64(0), b.Value)
	}
}

func TestVendorPerformances(t *testing.T) {
	invoices := []Invoice{
		{IssueDate: date("2024-01-01"), TotalAmount: 100, Status: "PAID", VendorName: "Acme"},
		{IssueDate: date("2024-01-02"), TotalAmount: 300, Status: "PENDING", VendorName: "Acme"},
		{IssueDate: date("2024-01-03"), TotalAmount: 50, Status: "PAID", VendorName: "Globex"},
	}

	perf := VendorPerformances([]string{"Acme", "Globex", "Initech"}, invoices)

	require.Len(t, perf, 3)
	assert.Equal(t, "Acme", perf[0].Name)
	assert.Equal(t, float64(400), perf[0].TotalSpend)
	assert.Equal(t, float64(100), perf[0].PaidAmount)
	assert.Equal(t, 2, perf[0].InvoiceCount)
	assert.Equal(t, float64(200), perf[0].AvgInvoiceValue)
	assert.Equal(t, float64(25), perf[0].PaymentRate)

	assert.Equal(t, "Globex", perf[1].Name)
	assert.Equal(t, float64(100), perf[1].PaymentRate)

	// Vendor with no invoices: everything zero, no division by zero
	assert.Equal(t, "Initech", perf[2].Name)
	assert.Equal(t, float64(0), perf[2].TotalSpend)
	assert.Equal(t, float64(0), perf[2].AvgInvoiceValue)
	assert.Equal(t, float64(0), perf[2].PaymentRate)
}

func TestPaymentMethods(t *testing.T) {
	payments := []Payment{
		{Method: "BANK_TRANSFER", Amount: 100},
		{Method: "BANK_TRANSFER", Amount: 200},
		{Method: "CREDIT_CARD", Amount: 50},
	}

	methods := PaymentMethods(payments)

	require.Len(t, methods, 2)
	assert.Equal(t, MethodBreakdown{Method: "BANK_TRANSFER", Amount: 300, Count: 2}, methods[0])
	assert.Equal(t, MethodBreakdown{Method: "CREDIT_CARD", Amount: 50, Count: 1}, methods[1])
}

func TestStatusBreakdown(t *testing.T) {
	invoices := []Invoice{
		inv("2024-01-01", 100, "PAID"),
		inv("2024-01-02", 200, "PAID"),
		inv("2024-01-03", 300, "OVERDUE"),
	}

	breakdown := StatusBreakdown(invoices)

	require.Len(t, breakdown, 2)
	assert.Equal(t, StatusCount{Status: "OVERDUE", Amount: 300, Count: 1}, breakdown[0])
	assert.Equal(t, StatusCount{Status: "PAID", Amount: 300, Count: 2}, breakdown[1])
}
