package models

import "time"

// Customer represents a party an invoice is billed to.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerInput is used for creating/updating customers.
type CustomerInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

func (c *CustomerInput) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	return ""
}
