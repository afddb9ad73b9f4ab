package routes

import (
	"github.com/gofiber/fiber/v2"

	"ventas-backend/controllers"
	"ventas-backend/middlewares"
	"ventas-backend/models"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registro", controllers.Register)
	api.Post("/login", controllers.Login)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticated())

	// Idempotency guard FIRST (not tied to any handler TX)
	protected.Use(middlewares.Idempotency())

	// Productos
	protected.Post("/productos", controllers.CreateProduct)
	protected.Get("/productos", controllers.GetProducts)
	protected.Get("/productos/codigo/:codigo", controllers.GetProductByCodigo)
	protected.Get("/productos/:id", controllers.GetProduct)
	protected.Put("/productos/:id", controllers.UpdateProduct)
	protected.Delete("/productos/:id", controllers.DeleteProduct)

	// Clientes
	protected.Post("/clientes", controllers.CreateClient)
	protected.Get("/clientes", controllers.GetClients)
	protected.Get("/clientes/identificacion/:identificacion", controllers.GetClientByIdentificacion)
	protected.Get("/clientes/:id", controllers.GetClient)
	protected.Put("/clientes/:id", controllers.UpdateClient)
	protected.Delete("/clientes/:id", controllers.DeleteClient)

	// Cotizaciones
	protected.Post("/cotizaciones", controllers.CreateQuotation)
	protected.Get("/cotizaciones", controllers.GetQuotations)
	protected.Get("/cotizaciones/:id", controllers.GetQuotation)
	protected.Get("/cotizaciones/:id/pdf", controllers.DownloadQuotationPDF)
	protected.Put("/cotizaciones/:id", controllers.UpdateQuotation)
	protected.Put("/cotizaciones/:id/convertir", controllers.ConvertQuotation)
	protected.Delete("/cotizaciones/:id", controllers.DeleteQuotation)

	// Notas de venta
	protected.Post("/notas-venta", controllers.CreateSalesNote)
	protected.Post("/notas-venta/desde-cotizacion", controllers.CreateSalesNoteFromQuotation)
	protected.Get("/notas-venta", controllers.GetSalesNotes)
	protected.Get("/notas-venta/:id", controllers.GetSalesNote)
	protected.Get("/notas-venta/:id/pdf", controllers.DownloadSalesNotePDF)
	protected.Put("/notas-venta/:id", controllers.UpdateSalesNote)
	protected.Put("/notas-venta/:id/anular", controllers.VoidSalesNote)
	protected.Delete("/notas-venta/:id", controllers.DeleteSalesNote)

	// Reportes
	protected.Get("/reportes/diario", controllers.DailyReport)
	protected.Get("/reportes/mensual", controllers.MonthlyReport)
	protected.Get("/reportes/diario/detalle", controllers.DailyDetail)
	protected.Get("/reportes/mensual/detalle", controllers.MonthlyDetail)
	protected.Get("/reportes/excel", controllers.ExportExcel)

	// Solo DESARROLLADOR puede liquidar la comisión del mes
	protected.Put("/reportes/comision/pagar",
		middlewares.RequireRole(models.RolDeveloper),
		controllers.MarkCommissionPaid)
}
