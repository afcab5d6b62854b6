package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router builds the full HTTP surface of the API.
func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		// Auth (no token required)
		r.Post("/auth/register", Register)
		r.Post("/auth/login", Login)

		r.Group(func(r chi.Router) {
			r.Use(Auth)

			// Users
			r.Get("/users", ListUsers)
			r.Post("/users", CreateUser)
			r.Put("/users/{id}", UpdateUser)
			r.Delete("/users/{id}", DeleteUser)
			r.Post("/users/{id}/enable-2fa", EnableTwoFactor)
			r.Post("/users/{id}/disable-2fa", DisableTwoFactor)

			// Vendors
			r.Get("/vendors", ListVendors)
			r.Post("/vendors", CreateVendor)
			r.Get("/vendors/top10", TopVendors)
			r.Get("/vendors/{id}", GetVendor)
			r.Put("/vendors/{id}", UpdateVendor)
			r.Delete("/vendors/{id}", DeleteVendor)

			// Customers
			r.Get("/customers", ListCustomers)
			r.Post("/customers", CreateCustomer)
			r.Get("/customers/{id}", GetCustomer)
			r.Put("/customers/{id}", UpdateCustomer)
			r.Delete("/customers/{id}", DeleteCustomer)

			// Invoices
			r.Get("/invoices", ListInvoices)
			r.Post("/invoices", CreateInvoice)
			r.Get("/invoices/{id}", GetInvoice)
			r.Put("/invoices/{id}", UpdateInvoice)
			r.Delete("/invoices/{id}", DeleteInvoice)

			// Documents
			r.Get("/documents", ListDocuments)
			r.Post("/documents", CreateDocument)
			r.Delete("/documents/{id}", DeleteDocument)

			// Aggregations
			r.Get("/stats", GetStats)
			r.Get("/invoice-trends", GetInvoiceTrends)
			r.Get("/category-spend", GetCategorySpend)
			r.Get("/categories", GetCategories)
			r.Get("/departments", GetDepartments)
			r.Get("/cash-outflow", GetCashOutflow)
			r.Get("/analytics/payment-methods", GetPaymentMethods)
			r.Get("/analytics/invoice-status-breakdown", GetStatusBreakdown)
			r.Get("/analytics/monthly-revenue", GetMonthlyRevenue)
			r.Get("/analytics/vendor-performance", GetVendorPerformance)

			// Chat with data
			r.Post("/chat-with-data", ChatWithData)

			// Backup
			r.Post("/backup", CreateBackup)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
