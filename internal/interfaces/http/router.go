package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps agrupa los handlers y la configuración que el router necesita.
type RouterDeps struct {
	JWTSecret      string
	MetricsEnabled bool

	Auth     *AuthHandler
	Company  *CompanyHandler
	Storage  *StorageHandler
	Supplier *SupplierHandler
	Product  *ProductHandler
	Supply   *SupplyHandler
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsEnabled {
		app.Get("/metrics", MetricsHandler())
	}

	api := app.Group("/api")

	// Rutas públicas
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)

	// Rutas protegidas: requieren Bearer Token válido
	protected := api.Use(AuthMiddleware(deps.JWTSecret))

	companies := protected.Group("/companies")
	companies.Post("/", deps.Company.Create)
	companies.Get("/me", deps.Company.Get)
	companies.Put("/me", deps.Company.Update)
	companies.Delete("/me", deps.Company.Delete)

	storage := protected.Group("/storage")
	storage.Post("/", deps.Storage.Create)
	storage.Get("/", deps.Storage.Get)
	storage.Put("/", deps.Storage.Update)
	storage.Delete("/", deps.Storage.Delete)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", deps.Supplier.Create)
	suppliers.Get("/", deps.Supplier.List)
	suppliers.Get("/:id", deps.Supplier.GetByID)
	suppliers.Put("/:id", deps.Supplier.Update)
	suppliers.Delete("/:id", deps.Supplier.Delete)

	products := protected.Group("/products")
	products.Post("/", deps.Product.Create)
	products.Get("/", deps.Product.List)
	products.Get("/:id", deps.Product.GetByID)
	products.Put("/:id", deps.Product.Update)
	products.Delete("/:id", deps.Product.Delete)

	supplies := protected.Group("/supplies")
	supplies.Post("/", deps.Supply.Create)
	supplies.Get("/", deps.Supply.List)
	supplies.Get("/export", deps.Supply.Export)
	supplies.Get("/:id", deps.Supply.GetByID)
	supplies.Get("/:id/receipt", deps.Supply.Receipt)
}
