package settingsControllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	settingsValidator "lms/validators/settings"
)

// maskSetting hides the value of encrypted settings before serialization
func maskSetting(s *models.SystemSetting) {
	if s.IsEncrypted {
		s.Value = utils.MaskSecret(s.Value)
	}
}

// ListSettings lists all system settings, optionally filtered by category.
// Encrypted values are masked.
func ListSettings(c *fiber.Ctx) error {
	db := database.Database.Db.Where("is_deleted = ?", false)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var settings []models.SystemSetting
	if err := db.Order("category asc, key asc").Find(&settings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch settings!", nil)
	}

	for i := range settings {
		maskSetting(&settings[i])
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", settings)
}

// GetSetting fetches a single setting by key. Encrypted values are masked.
func GetSetting(c *fiber.Ctx) error {
	key := c.Locals("settingKey").(string)

	var setting models.SystemSetting
	if err := database.Database.Db.Where("key = ? AND is_deleted = ?", key, false).First(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Setting not found!", nil)
	}

	maskSetting(&setting)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting fetched successfully!", setting)
}

// UpsertSetting creates or updates a setting by key. A submitted value equal
// to the mask placeholder keeps the stored value, so clients can echo back a
// masked read without wiping the secret.
func UpsertSetting(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSetting").(*settingsValidator.UpsertSettingRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var setting models.SystemSetting
	err := db.Where("key = ?", reqData.Key).First(&setting).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
		}

		if utils.IsMasked(reqData.Value) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid setting value!", nil)
		}

		setting = models.SystemSetting{
			Key:         reqData.Key,
			Value:       reqData.Value,
			Category:    reqData.Category,
			Description: reqData.Description,
		}
		if setting.Category == "" {
			setting.Category = "general"
		}
		if reqData.IsEncrypted != nil {
			setting.IsEncrypted = *reqData.IsEncrypted
		}

		if err := db.Create(&setting).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
		}

		maskSetting(&setting)
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Setting created successfully!", setting)
	}

	if !utils.IsMasked(reqData.Value) {
		setting.Value = reqData.Value
	}
	if reqData.Category != "" {
		setting.Category = reqData.Category
	}
	if reqData.Description != "" {
		setting.Description = reqData.Description
	}
	if reqData.IsEncrypted != nil {
		setting.IsEncrypted = *reqData.IsEncrypted
	}
	setting.IsDeleted = false

	if err := db.Save(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save setting!", nil)
	}

	maskSetting(&setting)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting updated successfully!", setting)
}

// DeleteSetting soft deletes a setting by key
func DeleteSetting(c *fiber.Ctx) error {
	key := c.Locals("settingKey").(string)

	var setting models.SystemSetting
	if err := database.Database.Db.Where("key = ? AND is_deleted = ?", key, false).First(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Setting not found!", nil)
	}

	setting.IsDeleted = true
	if err := database.Database.Db.Save(&setting).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting deleted successfully!", nil)
}
