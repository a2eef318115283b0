package helpers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"

	"triplus-booking-service/internal/pkg/errors"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

func RespSuccess(ctx *fiber.Ctx, log *otelzap.Logger, data interface{}, message string) error {
	return ctx.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespError(ctx *fiber.Ctx, log *otelzap.Logger, err error) error {
	resp, ok := err.(*errors.ErrorResp)
	if !ok {
		log.Ctx(ctx.UserContext()).Error(fmt.Sprintf("unclassified error: %v", err))
		return ctx.Status(fiber.StatusInternalServerError).JSON(Response{
			Success: false,
			Message: "internal server error",
			Kind:    errors.KindInternal,
		})
	}

	return ctx.Status(resp.Code).JSON(Response{
		Success: false,
		Message: resp.Message,
		Kind:    resp.Kind,
	})
}

// DurationCalculation returns the delay from now until the given moment.
func DurationCalculation(t time.Time) time.Duration {
	return time.Until(t)
}
