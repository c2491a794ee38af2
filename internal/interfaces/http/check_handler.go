package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// CheckHandler maneja las peticiones HTTP de conteos físicos.
type CheckHandler struct {
	uc  *inventory.InventoryCheckUseCase
	log *logger.Logger
}

// NewCheckHandler construye el handler.
func NewCheckHandler(uc *inventory.InventoryCheckUseCase, log *logger.Logger) *CheckHandler {
	return &CheckHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar conteo físico
// @Description  Calcula el diferencial contra el saldo del sistema al momento
//               del conteo. Nunca modifica el saldo del registro.
// @Tags         inventory-checks
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryCheckRequest  true  "code, year, actual_quantity, date"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/inventory-checks [post]
func (h *CheckHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryCheckRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, "conteo registrado", out)
}

// GetByCode godoc
// @Summary      Obtener conteo por código
// @Tags         inventory-checks
// @Produce      json
// @Param        code  path  string  true  "Código del conteo"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory-checks/{code} [get]
func (h *CheckHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return fail(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "conteo")
	}
	return ok(c, "conteo encontrado", out)
}

// List godoc
// @Summary      Listar conteos
// @Tags         inventory-checks
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (máx 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.Response
// @Router       /api/inventory-checks [get]
func (h *CheckHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "conteos listados", out)
}

// Update godoc
// @Summary      Actualizar conteo (patch parcial)
// @Tags         inventory-checks
// @Accept       json
// @Produce      json
// @Param        code  path  string                           true  "Código del conteo"
// @Param        body  body  dto.UpdateInventoryCheckRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory-checks/{code} [put]
func (h *CheckHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryCheckRequest
	if err := parseBody(c, &in); err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Update(c.Context(), c.Params("code"), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "conteo actualizado", out)
}

// Delete godoc
// @Summary      Eliminar conteo
// @Tags         inventory-checks
// @Produce      json
// @Param        code  path  string  true  "Código del conteo"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/inventory-checks/{code} [delete]
func (h *CheckHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("code")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, "conteo eliminado", nil)
}
