package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/soporteti/inventario_service/internal/helper"
)

// AuthMiddleware gates every mutation and read behind the external
// identity provider's token. Any authenticated user may touch any record;
// there is no finer-grained policy.
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", uint(user.UserID))
		ctx.Locals("user", user)
		return ctx.Next()
	}
}
