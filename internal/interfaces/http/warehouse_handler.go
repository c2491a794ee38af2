package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// WarehouseHandler maneja las peticiones HTTP de bodegas.
type WarehouseHandler struct {
	uc  *usecase.WarehouseUseCase
	log *logger.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "code, name"
// @Success      201  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, "bodega creada", out)
}

// GetByCode godoc
// @Summary      Obtener bodega con sus totales monetarios
// @Tags         warehouses
// @Produce      json
// @Param        code  path  string  true  "Código de la bodega"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/warehouses/{code} [get]
func (h *WarehouseHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "bodega")
	}
	return ok(c, "bodega encontrada", out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "bodegas listadas", out)
}

// Update godoc
// @Summary      Actualizar bodega (nombre, dirección)
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        code  path  string                      true  "Código de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/warehouses/{code} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Update(c.Params("code"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "bodega")
	}
	return ok(c, "bodega actualizada", out)
}

// Delete godoc
// @Summary      Eliminar bodega
// @Tags         warehouses
// @Produce      json
// @Param        code  path  string  true  "Código de la bodega"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/warehouses/{code} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("code")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "bodega eliminada", nil)
}
