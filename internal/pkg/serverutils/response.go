package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a bound request DTO.
func ValidateRequest(req any) error {
	return validate.Struct(req)
}

type APIResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Code    int    `json:"code,omitempty"`
}

func SuccessResponse(message string, data any) APIResponse {
	return APIResponse{Ok: true, Message: message, Data: data}
}

func ErrorResponse(code int, message string) APIResponse {
	return APIResponse{Ok: false, Code: code, Message: message}
}

// ErrorHandlerMiddleware turns panics into a 500 JSON response instead of a
// dropped connection.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
			}
		}()
		return ctx.Next()
	}
}
