package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dulceria-api/internal/application/dto"
)

// activeChecker contrato mínimo del middleware; lo implementa *auth.AuthUseCase.
type activeChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// RequireActiveUser rechaza tokens de usuarios desactivados después de emitido el token.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 403 Forbidden → usuario inactivo o eliminado.
//   - 503 Service Unavailable → fallo al consultar la DB.
func RequireActiveUser(checker activeChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "USER_CHECK_FAILED",
				Message: "no se pudo verificar el usuario, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "USER_INACTIVE",
				Message: "la cuenta está inactiva",
			})
		}
		return c.Next()
	}
}
