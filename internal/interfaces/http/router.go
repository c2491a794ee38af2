package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/importer"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockInUC   *inventory.StockInUseCase
	StockOutUC  *inventory.StockOutUseCase
	RecordUC    *inventory.RecordUseCase
	CheckUC     *inventory.InventoryCheckUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ImporterUC  *importer.StockInImporter
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Entradas de mercancía
	stockIn := api.Group("/stock-in")
	stockInHandler := NewStockInHandler(deps.StockInUC, deps.ImporterUC, deps.Log)
	stockIn.Post("/", stockInHandler.Create)
	stockIn.Post("/import", stockInHandler.Import)
	stockIn.Get("/", stockInHandler.List)
	stockIn.Get("/:code", stockInHandler.GetByCode)
	stockIn.Put("/:code", stockInHandler.Update)
	stockIn.Delete("/:code", stockInHandler.Delete)

	// Salidas de mercancía
	stockOut := api.Group("/stock-out")
	stockOutHandler := NewStockOutHandler(deps.StockOutUC, deps.Log)
	stockOut.Post("/", stockOutHandler.Create)
	stockOut.Get("/", stockOutHandler.List)
	stockOut.Get("/:code", stockOutHandler.GetByCode)
	stockOut.Put("/:code", stockOutHandler.Update)
	stockOut.Delete("/:code", stockOutHandler.Delete)

	// Registros de inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordUC, deps.Log)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/low-stock", inventoryHandler.ListLowStock)
	inv.Get("/by-product/:code", inventoryHandler.ListByProduct)
	inv.Get("/by-warehouse/:code", inventoryHandler.ListByWarehouse)
	inv.Get("/:code", inventoryHandler.GetByCode)
	inv.Put("/:code", inventoryHandler.Update)
	inv.Delete("/:code", inventoryHandler.Delete)

	// Conteos físicos
	checks := api.Group("/inventory-checks")
	checkHandler := NewCheckHandler(deps.CheckUC, deps.Log)
	checks.Post("/", checkHandler.Create)
	checks.Get("/", checkHandler.List)
	checks.Get("/:code", checkHandler.GetByCode)
	checks.Put("/:code", checkHandler.Update)
	checks.Delete("/:code", checkHandler.Delete)

	// Bodegas
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.Log)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Put("/:code", warehouseHandler.Update)
	warehouses.Delete("/:code", warehouseHandler.Delete)
}
