package routes

import (
	"github.com/gofiber/fiber/v2"

	"pos-backend/controllers"
	"pos-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Stores
	protected.Post("/store", controllers.CreateStore)
	protected.Get("/stores", controllers.GetStores)

	// Catalog
	protected.Post("/products", controllers.CreateProducts) // batch create
	protected.Get("/stores/:storeId/products", controllers.GetStoreProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)

	// Client directory
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Put("/client/:id", controllers.UpdateClient)

	// Sales (checkout submissions + settlement payments)
	protected.Post("/sales", controllers.CreateSale)
	protected.Get("/sales", controllers.GetSales)
	protected.Get("/sales/:id", controllers.GetSale)
	protected.Post("/sales/:id/payments", controllers.CreateSettlement)
	protected.Get("/sales/:id/payments", controllers.ListSettlements)
}
