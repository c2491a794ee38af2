package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// validate instancia compartida del validador de structs (es thread-safe).
var validate = validator.New()

// parseBody decodifica y valida el cuerpo JSON de la petición.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return invalidErr("cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return invalidErr("campo " + verrs[0].Field() + " inválido")
		}
		return invalidErr("datos inválidos")
	}
	return nil
}

func invalidErr(msg string) error {
	return errors.Join(errors.New(msg), domain.ErrInvalidInput)
}

// ok responde 200 con el sobre estándar.
func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.Response{Success: true, Message: message, Data: data})
}

// created responde 201 con el sobre estándar.
func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Message: message, Data: data})
}

// fail traduce errores de dominio a códigos HTTP. Los errores no mapeados se
// responden con un mensaje genérico; el detalle queda solo en el log.
func fail(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrRefNotFound):
		return failStatus(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return failStatus(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInsufficientStock):
		return failStatus(c, fiber.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		return failStatus(c, fiber.StatusInternalServerError, "error interno")
	}
}

// notFound responde 404 para recursos inexistentes en lecturas.
func notFound(c *fiber.Ctx, resource string) error {
	return failStatus(c, fiber.StatusNotFound, resource+" no encontrado")
}

func failStatus(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.Response{Success: false, Message: msg, Error: msg})
}

// pageParams lee limit/offset del query string con valores por defecto.
func pageParams(c *fiber.Ctx) (int, int) {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	page.DefaultPage()
	return page.Limit, page.Offset
}
