package handlers

import "github.com/gofiber/fiber/v2"

// Me returns the identity encoded in the verified bearer token.
// @Summary Get current user
// @Description Get current user information
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Router /auth/me [get]
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	userEmail := c.Locals("userEmail").(string)
	userRole := c.Locals("userRole").(string)
	return c.JSON(fiber.Map{
		"uid":   userID,
		"email": userEmail,
		"role":  userRole,
	})
}
