package routes

import (
	"handbook-backend/controllers"
	"handbook-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Register wires all HTTP routes. The DB handle is passed down explicitly so
// tests can run the whole app against their own database.
func Register(app *fiber.App, db *gorm.DB) {
	health := controllers.NewHealthController(db)
	suppliers := controllers.NewSupplierController(db)
	products := controllers.NewProductController(db)
	prices := controllers.NewPriceController(db)
	requests := controllers.NewRequestController(db)
	types := controllers.NewTypesController(db)

	api := app.Group("/api")

	api.Get("/health", health.Health)
	api.Get("/types", types.List)

	// Replay guard for mutating endpoints (Idempotency-Key header, optional)
	api.Use(middlewares.Idempotency(db))

	// Suppliers
	api.Get("/suppliers", suppliers.List)
	api.Post("/suppliers", suppliers.Create)
	api.Put("/suppliers/:id", suppliers.Update)
	api.Delete("/suppliers/:id", suppliers.Delete)

	// Products
	api.Get("/products", products.List)
	api.Post("/products", products.Create)
	api.Put("/products/:id", products.Update)
	api.Delete("/products/:id", products.Delete)
	api.Get("/products/:id/competition", products.Competition)

	// Supplier price offers
	api.Get("/supplier-prices", prices.List)
	api.Post("/supplier-prices", prices.Create)
	api.Put("/supplier-prices/:id", prices.Update)
	api.Delete("/supplier-prices/:id", prices.Delete)

	// Requests (header + items aggregate)
	api.Get("/requests", requests.List)
	api.Post("/requests", requests.Create)
	api.Put("/requests/:id", requests.Update)
	api.Delete("/requests/:id", requests.Delete)

	// Anything else is a miss
	app.Use(middlewares.NotFoundHandler)
}
