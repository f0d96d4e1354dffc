package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/models"
)

// loadUser fetches the live user row for the authenticated caller. The role
// in the JWT can go stale, so gates always check the database.
func loadUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, fiber.ErrUnauthorized
	}

	var user models.User
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ? AND is_active = ?", userID, false, true).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.ErrUnauthorized
		}
		return nil, fiber.ErrInternalServerError
	}
	return &user, nil
}

// AdminOnly allows only ADMIN users through
func AdminOnly(c *fiber.Ctx) error {
	user, err := loadUser(c)
	if err != nil {
		if err == fiber.ErrInternalServerError {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !user.IsAdmin() {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	c.Locals("authUser", user)
	return c.Next()
}

// InstructorOnly allows INSTRUCTOR and ADMIN users through. Ownership of the
// targeted resource is checked in the controller.
func InstructorOnly(c *fiber.Ctx) error {
	user, err := loadUser(c)
	if err != nil {
		if err == fiber.ErrInternalServerError {
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !user.IsInstructor() && !user.IsAdmin() {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Instructor only.", nil)
	}

	c.Locals("authUser", user)
	return c.Next()
}

// AuthUser returns the user loaded by a role gate
func AuthUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("authUser").(*models.User)
	return user, ok
}
