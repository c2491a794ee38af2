package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de registros de inventario.
type InventoryHandler struct {
	uc  *inventory.RecordUseCase
	log *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RecordUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear registro de inventario
// @Description  El saldo actual se deriva de saldo inicial + entradas - salidas.
//               Ante colisión de código se reintenta con sufijos _1, _2, ...
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRecordRequest  true  "code, year, product_code, warehouse_code"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRecordRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, "registro creado", out)
}

// GetByCode godoc
// @Summary      Obtener registro por código
// @Tags         inventory
// @Produce      json
// @Param        code  path  string  true  "Código del registro"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/{code} [get]
func (h *InventoryHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "registro")
	}
	return ok(c, "registro encontrado", out)
}

// ListByProduct godoc
// @Summary      Listar registros de un producto
// @Tags         inventory
// @Produce      json
// @Param        code    path   string  true   "Código del producto"
// @Param        limit   query  int     false  "Tamaño de página (máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/by-product/{code} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByProduct(c.Context(), c.Params("code"), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "registros listados", out)
}

// ListByWarehouse godoc
// @Summary      Listar registros de una bodega
// @Tags         inventory
// @Produce      json
// @Param        code    path   string  true   "Código de la bodega"
// @Param        limit   query  int     false  "Tamaño de página (máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/by-warehouse/{code} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListByWarehouse(c.Context(), c.Params("code"), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "registros listados", out)
}

// ListLowStock godoc
// @Summary      Listar registros con saldo bajo el umbral mínimo
// @Tags         inventory
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListLowStock(c.Context(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "registros listados", out)
}

// Update godoc
// @Summary      Actualizar registro (patch parcial)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        code  path  string                            true  "Código del registro"
// @Param        body  body  dto.UpdateInventoryRecordRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory/{code} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRecordRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("code"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "registro actualizado", out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Description  Se rechaza con 409 mientras algún conteo físico lo referencie.
// @Tags         inventory
// @Produce      json
// @Param        code  path  string  true  "Código del registro"
// @Success      200  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/inventory/{code} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("code")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "registro eliminado", nil)
}
