package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/domain"
)

// statusFor traduce el tipo de error del núcleo a código HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInsufficientStock:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con dto.ErrorResponse según domain.KindOf(err).
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	return c.Status(statusFor(kind)).JSON(dto.ErrorResponse{
		Code:      string(kind),
		Message:   err.Error(),
		RequestID: GetRequestID(c),
	})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg, RequestID: GetRequestID(c)})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id debe ser un entero positivo")
	}
	return id, nil
}

// errorHandler respuesta JSON para errores no manejados por los handlers (404 de ruta, panics recuperados).
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	errCode := "INTERNAL"
	switch code {
	case fiber.StatusNotFound:
		errCode = "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		errCode = "METHOD_NOT_ALLOWED"
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: errCode, Message: err.Error(), RequestID: GetRequestID(c)})
}
