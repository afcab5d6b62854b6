package models

import "time"

// Vendor represents a party that issues invoices to us.
type Vendor struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// VendorInput is used for creating/updating vendors.
type VendorInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (v *VendorInput) Validate() string {
	if v.Name == "" {
		return "name is required"
	}
	return ""
}
