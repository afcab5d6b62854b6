// Package analytics computes derived reporting values from invoice and
// payment rows. All functions are pure: they read the rows they are given,
// never touch the database, and return zeroed/empty results for empty input.
package analytics

import (
	"math"
	"sort"
	"time"
)

// Invoice is the read-only projection of an invoice row needed by the
// aggregations. VendorName is populated from the joined vendor row.
type Invoice struct {
	IssueDate   time.Time
	DueDate     *time.Time
	TotalAmount float64
	Status      string
	Category    *string
	VendorName  string
}

// Payment is the projection of a payment row used by the method breakdown.
type Payment struct {
	Method string
	Amount float64
}

const (
	statusPaid    = "PAID"
	statusPending = "PENDING"
	statusOverdue = "OVERDUE"
)

// Stats is the dashboard summary. Monetary values are rounded to the nearest
// integer for display.
type Stats struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalInvoices       int     `json:"totalInvoices"`
	PaidAmount          float64 `json:"paidAmount"`
	PendingAmount       float64 `json:"pendingAmount"`
	OverdueAmount       float64 `json:"overdueAmount"`
	PaidCount           int     `json:"paidCount"`
	PendingCount        int     `json:"pendingCount"`
	OverdueCount        int     `json:"overdueCount"`
	DocumentsUploaded   int     `json:"documentsUploaded"`
	AverageInvoiceValue float64 `json:"averageInvoiceValue"`
}

// Summarize computes the dashboard stats. Invoices with a status outside the
// three named buckets contribute to the total but to no per-status bucket.
// The document count is an independent entity count passed in by the caller.
func Summarize(invoices []Invoice, documentCount int) Stats {
	s := Stats{TotalInvoices: len(invoices), DocumentsUploaded: documentCount}

	var total float64
	var paid, pending, overdue float64
	for _, inv := range invoices {
		total += inv.TotalAmount
		switch inv.Status {
		case statusPaid:
			paid += inv.TotalAmount
			s.PaidCount++
		case statusPending:
			pending += inv.TotalAmount
			s.PendingCount++
		case statusOverdue:
			overdue += inv.TotalAmount
			s.OverdueCount++
		}
	}

	s.TotalRevenue = math.Round(total)
	s.PaidAmount = math.Round(paid)
	s.PendingAmount = math.Round(pending)
	s.OverdueAmount = math.Round(overdue)
	if len(invoices) > 0 {
		s.AverageInvoiceValue = math.Round(total / float64(len(invoices)))
	}
	return s
}

// TrendPoint is one month of the basic invoice trend.
type TrendPoint struct {
	Month    string  `json:"month"`
	Invoices int     `json:"invoices"`
	Value    float64 `json:"value"`
}

// MonthlyTrend groups invoices by the calendar month of their issue date and
// returns the groups in chronological order. The label is "Jan 2006" style;
// ordering uses the underlying date, never the label.
func MonthlyTrend(invoices []Invoice) []TrendPoint {
	type group struct {
		point TrendPoint
		key   int
	}
	groups := map[int]*group{}
	for _, inv := range invoices {
		k := monthKey(inv.IssueDate)
		g, ok := groups[k]
		if !ok {
			g = &group{point: TrendPoint{Month: monthLabel(inv.IssueDate)}, key: k}
			groups[k] = g
		}
		g.point.Invoices++
		g.point.Value += inv.TotalAmount
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]TrendPoint, len(ordered))
	for i, g := range ordered {
		out[i] = g.point
	}
	return out
}

// MonthRevenue is one month of the richer revenue trend, with the monthly sum
// split by status.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Overdue float64 `json:"overdue"`
	Count   int     `json:"count"`
}

// MonthlyRevenue is the status-split variant of MonthlyTrend, also emitted in
// chronological order.
func MonthlyRevenue(invoices []Invoice) []MonthRevenue {
	type group struct {
		rev MonthRevenue
		key int
	}
	groups := map[int]*group{}
	for _, inv := range invoices {
		k := monthKey(inv.IssueDate)
		g, ok := groups[k]
		if !ok {
			g = &group{rev: MonthRevenue{Month: monthLabel(inv.IssueDate)}, key: k}
			groups[k] = g
		}
		g.rev.Revenue += inv.TotalAmount
		g.rev.Count++
		switch inv.Status {
		case statusPaid:
			g.rev.Paid += inv.TotalAmount
		case statusPending:
			g.rev.Pending += inv.TotalAmount
		case statusOverdue:
			g.rev.Overdue += inv.TotalAmount
		}
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]MonthRevenue, len(ordered))
	for i, g := range ordered {
		out[i] = g.rev
	}
	return out
}

// CategorySpend is the summed spend of one invoice category.
type CategorySpend struct {
	Category string  `json:"category"`
	Spend    float64 `json:"spend"`
}

// CategoryBreakdown sums spend per category. Invoices without a category are
// excluded from this view (the department view maps them to "General").
// Output is sorted by category name for stable responses.
func CategoryBreakdown(invoices []Invoice) []CategorySpend {
	sums := map[string]float64{}
	for _, inv := range invoices {
		if inv.Category == nil {
			continue
		}
		sums[*inv.Category] += inv.TotalAmount
	}

	out := make([]CategorySpend, 0, len(sums))
	for category, spend := range sums {
		out = append(out, CategorySpend{Category: category, Spend: spend})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Department is a display rollup of an invoice category with a synthetic
// budget attached (spend plus 20% headroom, a display heuristic).
type Department struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Spent         float64 `json:"spent"`
	Budget        float64 `json:"budget"`
	InvoiceCount  int     `json:"invoiceCount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}

// Departments groups invoices by category, mapping a missing category to
// "General", and partitions each category's spend into paid vs
// pending-or-overdue. Budget is round(spent * 1.2).
func Departments(invoices []Invoice) []Department {
	groups := map[string]*Department{}
	for _, inv := range invoices {
		name := "General"
		if inv.Category != nil {
			name = *inv.Category
		}
		d, ok := groups[name]
		if !ok {
			d = &Department{ID: name, Name: name, Category: name}
			groups[name] = d
		}
		d.Spent += inv.TotalAmount
		d.InvoiceCount++
		switch inv.Status {
		case statusPaid:
			d.PaidAmount += inv.TotalAmount
		case statusPending, statusOverdue:
			d.PendingAmount += inv.TotalAmount
		}
	}

	out := make([]Department, 0, len(groups))
	for _, d := range groups {
		d.Budget = math.Round(d.Spent * 1.2)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// VendorSpend is one vendor's spend split into paid and outstanding amounts.
type VendorSpend struct {
	Name    string  `json:"name"`
	Spend   float64 `json:"spend"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
}

// TopVendors sums spend per vendor across all statuses, drops vendors with
// spend <= 0, sorts descending by spend, and truncates to n entries. Pending
// covers both PENDING and OVERDUE invoices.
func TopVendors(invoices []Invoice, n int) []VendorSpend {
	groups := map[string]*VendorSpend{}
	for _, inv := range invoices {
		v, ok := groups[inv.VendorName]
		if !ok {
			v = &VendorSpend{Name: inv.VendorName}
			groups[inv.VendorName] = v
		}
		v.Spend += inv.TotalAmount
		switch inv.Status {
		case statusPaid:
			v.Paid += inv.TotalAmount
		case statusPending, statusOverdue:
			v.Pending += inv.TotalAmount
		}
	}

	out := make([]VendorSpend, 0, len(groups))
	for _, v := range groups {
		if v.Spend <= 0 {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// OutflowBucket is one fixed day-range window of the cash-outflow forecast.
type OutflowBucket struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// CashOutflow forecasts near-term payables. Only PENDING and OVERDUE invoices
// with a due date participate. daysDiff is the calendar-day difference from
// today (truncation, not rounding); an invoice lands in the first matching
// bucket and invoices outside every range are dropped.
func CashOutflow(invoices []Invoice, today time.Time) []OutflowBucket {
	buckets := []OutflowBucket{
		{Day: "0-7 days"},
		{Day: "8-14 days"},
		{Day: "15-21 days"},
		{Day: "22-30 days"},
	}
	ranges := [][2]int{{0, 7}, {8, 14}, {15, 21}, {22, 30}}

	base := truncateDay(today)
	for _, inv := range invoices {
		if inv.Status != statusPending && inv.Status != statusOverdue {
			continue
		}
		if inv.DueDate == nil {
			continue
		}
		days := int(math.Floor(truncateDay(*inv.DueDate).Sub(base).Hours() / 24))
		for i, r := range ranges {
			if days >= r[0] && days <= r[1] {
				buckets[i].Value += inv.TotalAmount
				break
			}
		}
	}
	return buckets
}

// VendorPerformance is one vendor's spend profile across its invoices.
type VendorPerformance struct {
	Name            string  `json:"name"`
	TotalSpend      float64 `json:"totalSpend"`
	PaidAmount      float64 `json:"paidAmount"`
	InvoiceCount    int     `json:"invoiceCount"`
	AvgInvoiceValue float64 `json:"avgInvoiceValue"`
	PaymentRate     float64 `json:"paymentRate"`
}

// VendorPerformances computes per-vendor totals for every vendor name given,
// including vendors with no invoices at all (zero values, payment rate 0).
// Output is sorted descending by total spend.
func VendorPerformances(vendorNames []string, invoices []Invoice) []VendorPerformance {
	byVendor := map[string][]Invoice{}
	for _, inv := range invoices {
		byVendor[inv.VendorName] = append(byVendor[inv.VendorName], inv)
	}

	out := make([]VendorPerformance, 0, len(vendorNames))
	for _, name := range vendorNames {
		p := VendorPerformance{Name: name}
		for _, inv := range byVendor[name] {
			p.TotalSpend += inv.TotalAmount
			p.InvoiceCount++
			if inv.Status == statusPaid {
				p.PaidAmount += inv.TotalAmount
			}
		}
		if p.InvoiceCount > 0 {
			p.AvgInvoiceValue = p.TotalSpend / float64(p.InvoiceCount)
		}
		if p.TotalSpend > 0 {
			p.PaymentRate = p.PaidAmount / p.TotalSpend * 100
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpend != out[j].TotalSpend {
			return out[i].TotalSpend > out[j].TotalSpend
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MethodBreakdown is the summed payments of one payment method.
type MethodBreakdown struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// PaymentMethods groups payments by method, sorted by method name.
func PaymentMethods(payments []Payment) []MethodBreakdown {
	groups := map[string]*MethodBreakdown{}
	for _, p := range payments {
		m, ok := groups[p.Method]
		if !ok {
			m = &MethodBreakdown{Method: p.Method}
			groups[p.Method] = m
		}
		m.Amount += p.Amount
		m.Count++
	}

	out := make([]MethodBreakdown, 0, len(groups))
	for _, m := range groups {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

// StatusCount is the summed amount and count of one invoice status.
type StatusCount struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// StatusBreakdown groups invoices by status value, sorted by status name.
// Unknown statuses get their own group here, unlike the named buckets in
// Summarize.
func StatusBreakdown(invoices []Invoice) []StatusCount {
	groups := map[string]*StatusCount{}
	for _, inv := range invoices {
		s, ok := groups[inv.Status]
		if !ok {
			s = &StatusCount{Status: inv.Status}
			groups[inv.Status] = s
		}
		s.Amount += inv.TotalAmount
		s.Count++
	}

	out := make([]StatusCount, 0, len(groups))
	for _, s := range groups {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
