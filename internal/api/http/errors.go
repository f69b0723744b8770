package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrorHandler renders errors as {"error": true, "message": ...}. Search
// errors keep their message verbatim so the dashboard can show it as is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var (
		fe *fiber.Error
		nf *weather.NotFoundError
		up *weather.UpstreamError
		un *weather.UnknownError
	)
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, weather.ErrEmptyQuery):
		code = fiber.StatusBadRequest
	case errors.As(err, &nf):
		code = fiber.StatusNotFound
	case errors.As(err, &up):
		code = fiber.StatusBadGateway
	case errors.As(err, &un):
		logger.Error("%s %s: %v", c.Method(), c.Path(), un.Err)
	default:
		logger.Error("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
