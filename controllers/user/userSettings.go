package userControllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	userValidator "lms/validators/user"
)

// GetUserSettings lists the caller's preference entries
func GetUserSettings(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var settings []models.UserSetting
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("key asc").
		Find(&settings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully.", settings)
}

// PutUserSetting upserts one preference entry for the caller
func PutUserSetting(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUserSetting").(*userValidator.PutUserSettingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var setting models.UserSetting
	err := db.Where("user_id = ? AND key = ?", userId, reqData.Key).First(&setting).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
		}
		setting = models.UserSetting{UserID: userId, Key: reqData.Key, Value: reqData.Value}
		if err := db.Create(&setting).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Setting saved successfully.", setting)
	}

	setting.Value = reqData.Value
	setting.IsDeleted = false
	if err := db.Save(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting saved successfully.", setting)
}
