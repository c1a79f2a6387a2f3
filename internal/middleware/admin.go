package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kafune/rede-guti/internal/claims"
	"github.com/kafune/rede-guti/internal/dto"
	"github.com/kafune/rede-guti/internal/models"
	"gorm.io/gorm"
)

// AdminRequired checks the role claim and falls back to the stored user
// role, so a demotion takes effect before the token expires.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := claims.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if claims.GetRole(c) == models.RoleAdmin {
			var user models.User
			if err := db.Select("role").First(&user, "id = ?", userID).Error; err == nil && user.Role == models.RoleAdmin {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
