package http

import (
	"github.com/gofiber/fiber/v2"

	apptransfer "github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/application/usecase"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OutletUC      *usecase.OutletUseCase
	IngredientUC  *usecase.IngredientUseCase
	StockUC       *usecase.StockUseCase
	RequestUC     *apptransfer.RequestUseCase
	FulfillmentUC *apptransfer.FulfillmentUseCase
	ReceivingUC   *apptransfer.ReceivingUseCase
	ListingUC     *apptransfer.ListingUseCase
	DespatchUC    *apptransfer.DespatchNoteUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Outlets (protegido; altas y cambios solo desde la central)
	outlets := protected.Group("/outlets")
	outletHandler := NewOutletHandler(deps.OutletUC)
	outlets.Post("/", RequireRole(entity.OutletRoleCentral), outletHandler.Create)
	outlets.Get("/", outletHandler.List)
	outlets.Get("/:id", outletHandler.Get)
	outlets.Put("/:id", RequireRole(entity.OutletRoleCentral), outletHandler.Update)

	// Stock (protegido, solo lectura)
	stockHandler := NewStockHandler(deps.StockUC)
	outlets.Get("/:outlet_id/stock", stockHandler.ListByOutlet)
	outlets.Get("/:outlet_id/stock/:ingredient_id", stockHandler.Get)

	// Ingredients (protegido; catálogo administrado por la central)
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", RequireRole(entity.OutletRoleCentral), ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.Get)
	ingredients.Put("/:id", RequireRole(entity.OutletRoleCentral), ingredientHandler.Update)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.RequestUC, deps.FulfillmentUC, deps.ReceivingUC, deps.ListingUC, deps.DespatchUC)
	transfers.Post("/", RequireRole(entity.OutletRoleBranch), transferHandler.Submit)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/pending", RequireRole(entity.OutletRoleCentral), transferHandler.ListPending)
	transfers.Get("/:id", transferHandler.Get)
	transfers.Post("/:id/ship", RequireRole(entity.OutletRoleCentral), transferHandler.Ship)
	transfers.Post("/:id/receive", RequireRole(entity.OutletRoleBranch), transferHandler.Receive)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Get("/:id/despatch-note", transferHandler.DespatchNote)
}
