package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Shifts-api/internal/application/dto"
	"github.com/jhoicas/Shifts-api/internal/domain"
)

// Machine-readable error codes of dto.ErrorResponse.
const (
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidDuration = "INVALID_DURATION"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeMalformed       = "MALFORMED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL"
)

type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[error]errorMapping{
	domain.ErrInvalidInput:    {fiber.StatusBadRequest, CodeInvalidInput},
	domain.ErrInvalidDuration: {fiber.StatusBadRequest, CodeInvalidDuration},
	domain.ErrUnauthenticated: {fiber.StatusUnauthorized, CodeUnauthenticated},
	domain.ErrMalformed:       {fiber.StatusUnauthorized, CodeMalformed},
	domain.ErrForbidden:       {fiber.StatusForbidden, CodeForbidden},
	domain.ErrConflict:        {fiber.StatusConflict, CodeConflict},
	domain.ErrNotFound:        {fiber.StatusNotFound, CodeNotFound},
	domain.ErrInternal:        {fiber.StatusInternalServerError, CodeInternal},
}

// StatusOf returns the HTTP status and code for err's kind.
func StatusOf(err error) (int, string) {
	m := errorMappings[domain.KindOf(err)]
	return m.status, m.code
}

// respondError writes err as dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code := StatusOf(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: domain.MessageOf(err)})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidInput, Message: "Invalid request body"})
}

// ErrorHandler is the fiber.Config.ErrorHandler: errors returned by handlers and middleware
// (including fiber's own, e.g. 413 on oversized bodies) are answered in the API error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch {
		case fe.Code == fiber.StatusNotFound:
			code = CodeNotFound
		case fe.Code < fiber.StatusInternalServerError:
			code = CodeInvalidInput
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	status, _ := StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
	}
	return respondError(c, err)
}

// NotFound answers routes nobody registered.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "Endpoint not found"})
}
