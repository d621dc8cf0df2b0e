package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags every request with an id so log lines from one
// request can be correlated. A client-supplied id is kept as-is.
func RequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Locals(HeaderRequestID, id)
		ctx.Set(HeaderRequestID, id)
		return ctx.Next()
	}
}
