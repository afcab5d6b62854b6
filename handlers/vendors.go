package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/david578-arc/invoice-analytics/analytics"
	"github.com/david578-arc/invoice-analytics/models"
)

const vendorSelectQuery = `SELECT id, name, email, phone, address, created_at FROM vendors`

func scanVendor(scanner interface{ Scan(...any) error }) (models.Vendor, error) {
	var v models.Vendor
	err := scanner.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.CreatedAt)
	return v, err
}

func getVendorByID(id int) (models.Vendor, error) {
	return scanVendor(DB.QueryRow(vendorSelectQuery+" WHERE id = ?", id))
}

// ListVendors lists all vendors
// @Summary      List vendors
// @Tags         vendors
// @Produce      json
// @Success      200  {array}  models.Vendor
// @Router       /vendors [get]
// @Security     BearerAuth
func ListVendors(w http.ResponseWriter, r *http.Request) {
	rows, err := DB.Query(vendorSelectQuery + " ORDER BY name")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		vendors = append(vendors, v)
	}
	if vendors == nil {
		vendors = []models.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

// GetVendor retrieves a single vendor by ID
// @Summary      Get vendor
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  models.Vendor
// @Failure      404  {object}  errorResponse
// @Router       /vendors/{id} [get]
// @Security     BearerAuth
func GetVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	v, err := getVendorByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "vendor not found")
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// CreateVendor creates a new vendor
// @Summary      Create vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        vendor  body      models.VendorInput  true  "Vendor contents"
// @Success      201     {object}  models.Vendor
// @Failure      400     {object}  errorResponse
// @Router       /vendors [post]
// @Security     BearerAuth
func CreateVendor(w http.ResponseWriter, r *http.Request) {
	var input models.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var id int
	err := DB.QueryRow(`INSERT INTO vendors (name, email, phone, address) VALUES (?, ?, ?, ?) RETURNING id`,
		input.Name, input.Email, input.Phone, input.Address).Scan(&id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	v, err := getVendorByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVendor updates an existing vendor
// @Summary      Update vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Vendor ID"
// @Param        vendor  body      models.VendorInput  true  "Updated vendor contents"
// @Success      200     {object}  models.Vendor
// @Failure      400     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /vendors/{id} [put]
// @Security     BearerAuth
func UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	var input models.VendorInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := input.Validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	res, err := DB.Exec(`UPDATE vendors SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?`,
		input.Name, input.Email, input.Phone, input.Address, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}

	v, err := getVendorByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVendor deletes a vendor
// @Summary      Delete vendor
// @Tags         vendors
// @Produce      json
// @Param        id   path      int  true  "Vendor ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  errorResponse
// @Router       /vendors/{id} [delete]
// @Security     BearerAuth
func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	res, err := DB.Exec("DELETE FROM vendors WHERE id = ?", id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeError(w, http.StatusNotFound, "vendor not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// TopVendors returns the ten vendors with the highest spend
// @Summary      Top vendors by spend
// @Description  Vendor spend across all invoices, split into paid and outstanding amounts.
// @Tags         vendors
// @Produce      json
// @Success      200  {array}  analytics.VendorSpend
// @Router       /vendors/top10 [get]
// @Security     BearerAuth
func TopVendors(w http.ResponseWriter, r *http.Request) {
	invoices, err := loadInvoiceFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.TopVendors(invoices, 10))
}
