package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/david578-arc/invoice-analytics/models"
)

const invoiceSelectQuery = `SELECT i.id, i.invoice_number, i.vendor_id, i.customer_id, i.issue_date, i.due_date,
		i.total_amount, i.status, i.category, i.description, i.created_at, i.updated_at,
		v.name, c.name
		FROM invoices i
		JOIN vendors v ON i.vendor_id = v.id
		JOIN customers c ON i.customer_id = c.id`

// sortColumns whitelists the caller-specified sort fields.
var sortColumns = map[string]string{
	"issueDate":     "i.issue_date",
	"dueDate":       "i.due_date",
	"totalAmount":   "i.total_amount",
	"invoiceNumber": "i.invoice_number",
	"status":        "i.status",
	"category":      "i.category",
	"createdAt":     "i.created_at",
}

func scanInvoice(scanner interface{ Scan(...any) error }) (models.Invoice, error) {
	var inv models.Invoice
	err := scanner.Scan(&inv.ID, &inv.InvoiceNumber, &inv.VendorID, &inv.CustomerID,
		&inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status, &inv.Category,
		&inv.Description, &inv.CreatedAt, &inv.UpdatedAt, &inv.VendorName, &inv.CustomerName)
	return inv, err
}

func getInvoiceByID(id int) (models.Invoice, error) {
	inv, err := scanInvoice(DB.QueryRow(invoiceSelectQuery+" WHERE i.id = ?", id))
	if err != nil {
		return inv, err
	}

	rows, err := DB.Query(`SELECT id, invoice_id, description, quantity, unit_price, total_price
		FROM line_items WHERE invoice_id = ?`, id)
	if err != nil {
		return inv, err
	}
	defer rows.Close()
	inv.LineItems = []models.LineItem{}
	for rows.Next() {
		var li models.LineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.TotalPrice); err != nil {
			return inv, err
		}
		inv.LineItems = append(inv.LineItems, li)
	}

	payRows, err := DB.Query(`SELECT id, invoice_id, amount, payment_date, payment_method, reference, created_at
		FROM payments WHERE invoice_id = ?`, id)
	if err != nil {
		return inv, err
	}
	defer payRows.Close()
	inv.Payments = []models.Payment{}
	for payRows.Next() {
		var p models.Payment
		if err := payRows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.PaymentMethod, &p.Reference, &p.CreatedAt); err != nil {
			return inv, err
		}
		inv.Payments = append(inv.Payments, p)
	}
	return inv, nil
}

// pagination describes the page window of a list response.
type pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// invoiceList is the paginated invoice list body.
type invoiceList struct {
	Data       []models.Invoice `json:"data"`
	Pagination pagination       `json:"pagination"`
}

// ListInvoices lists invoices with filtering and pagination
// @Summary      List invoices
// @Description  Filtered, sorted, paginated invoice list.
// @Tags         invoices
// @Produce      json
// @Param        search     query  string  false  "Substring match on invoice number, vendor name, or customer name"
// @Param        status     query  string  false  "Filter by status (PAID, PENDING, OVERDUE)"
// @Param        category   query  string  false  "Filter by category"
// @Param        startDate  query  string  false  "Inclusive lower bound on issue date (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Inclusive upper bound on issue date (YYYY-MM-DD)"
// @Param        minAmount  query  number  false  "Inclusive lower bound on total amount"
// @Param        maxAmount  query  number  false  "Inclusive upper bound on total amount"
// @Param        page       query  int     false  "Page number (default 1)"
// @Param        limit      query  int     false  "Page size (default 10)"
// @Param        sortBy     query  string  false  "Sort field (default issueDate)"
// @Param        sortOrder  query  string  false  "asc or desc (default desc)"
// @Success      200  {object}  invoiceList
// @Router       /invoices [get]
// @Security     BearerAuth
func ListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var conditions []string
	var args []any

	if search := q.Get("search"); search != "" {
		conditions = append(conditions, "(i.invoice_number LIKE ? OR v.name LIKE ? OR c.name LIKE ?)")
		s := "%" + search + "%"
		args = append(args, s, s, s)
	}
	if status := q.Get("status"); status != "" && status != "all" {
		conditions = append(conditions, "i.status = ?")
		args = append(args, status)
	}
	if category := q.Get("category"); category != "" && category != "all" {
		conditions = append(conditions, "i.category = ?")
		args = append(args, category)
	}
	if from := q.Get("startDate"); from != "" {
		conditions = append(conditions, "i.issue_date >= ?")
		args = append(args, from)
	}
	if to := q.Get("endDate"); to != "" {
		conditions = append(conditions, "i.issue_date <= ?")
		args = append(args, to)
	}
	if min := q.Get("minAmount"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			conditions = append(conditions, "i.total_amount >= ?")
			args = append(args, v)
		}
	}
	if max := q.Get("maxAmount"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			conditions = append(conditions, "i.total_amount <= ?")
			args = append(args, v)
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	sortCol, ok := sortColumns[q.Get("sortBy")]
	if !ok {
		sortCol = "i.issue_date"
	}
	order := "DESC"
	if q.Get("sortOrder") == "asc" {
		order = "ASC"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM invoices i
		JOIN vendors v ON i.vendor_id = v.id
		JOIN customers c ON i.customer_id = c.id` + where
	if err := DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT ? OFFSET ?", invoiceSelectQuery, where, sortCol, order)
	rows, err := DB.Query(query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		invoices = append(invoices, inv)
	}

	writeJSON(w, http.StatusOK, invoiceList{
		Data: invoices,
		Pagination: pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// GetInvoice retrieves a single invoice by ID
// @Summary      Get invoice
// @Description  Invoice with vendor/customer names, line items, and payments.
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  models.Invoice
// @Failure      404  {object}  errorResponse
// @Router       /invoices/{id} [get]
// @Security     BearerAuth
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	inv, err := getInvoiceByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "invoice not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// CreateInvoice creates a new invoice with nested line items
// @Summary      Create invoice
// @Description  Create an invoice; nested line items are inserted in the same transaction.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        invoice  body      models.InvoiceInput  true  "Invoice contents"
// @Success      201      {object}  models.Invoice
// @Failure      400      {object}  errorResponse
// @Router       /invoices [post]
// @Security     BearerAuth
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRow(`INSERT INTO invoices (invoice_number, vendor_id, customer_id, issue_date, due_date,
		total_amount, status, category, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		input.InvoiceNumber, input.VendorID, input.CustomerID, input.IssueDate, input.DueDate,
		input.TotalAmount, input.Status, input.Category, input.Description).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, li := range input.LineItems {
		_, err = tx.Exec(`INSERT INTO line_items (invoice_id, description, quantity, unit_price, total_price)
			VALUES (?, ?, ?, ?, ?)`, id, li.Description, li.Quantity, li.UnitPrice, li.TotalPrice)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch created invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

// UpdateInvoice updates an existing invoice
// @Summary      Update invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Invoice ID"
// @Param        invoice  body      models.InvoiceInput  true  "Updated invoice contents"
// @Success      200      {object}  models.Invoice
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /invoices/{id} [put]
// @Security     BearerAuth
func UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE invoices SET invoice_number = ?, vendor_id = ?, customer_id = ?, issue_date = ?,
		due_date = ?, total_amount = ?, status = ?, category = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		input.InvoiceNumber, input.VendorID, input.CustomerID, input.IssueDate, input.DueDate,
		input.TotalAmount, input.Status, input.Category, input.Description, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}

	inv, err := getInvoiceByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to re-fetch updated invoice: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// DeleteInvoice deletes an invoice and its child rows
// @Summary      Delete invoice
// @Description  Remove an invoice along with its payments and line items in one transaction.
// @Tags         invoices
// @Produce      json
// @Param        id   path      int  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /invoices/{id} [delete]
// @Security     BearerAuth
func DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	tx, err := DB.Begin()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM payments WHERE invoice_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if _, err := tx.Exec("DELETE FROM line_items WHERE invoice_id = ?", id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	res, err := tx.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "invoice not found")
		return
	}
	if err := tx.Commit(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}
