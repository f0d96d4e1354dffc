package settingsControllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	settingsValidator "lms/validators/settings"
)

// MCQ generation settings live in the settings table under the mcq category
const (
	mcqKeyProvider     = "mcq.provider"
	mcqKeyModelName    = "mcq.model_name"
	mcqKeyMaxQuestions = "mcq.max_questions"
	mcqKeyDifficulty   = "mcq.difficulty"
)

func getSettingValue(key, fallback string) string {
	var setting models.SystemSetting
	err := database.Database.Db.Where("key = ? AND is_deleted = ?", key, false).First(&setting).Error
	if err != nil {
		return fallback
	}
	return setting.Value
}

func putSettingValue(db *gorm.DB, key, value string) error {
	var setting models.SystemSetting
	err := db.Where("key = ?", key).First(&setting).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return db.Create(&models.SystemSetting{
			Key:      key,
			Value:    value,
			Category: "mcq",
		}).Error
	}

	setting.Value = value
	setting.Category = "mcq"
	setting.IsDeleted = false
	return db.Save(&setting).Error
}

// GetMcqSettings returns the MCQ generation knobs
func GetMcqSettings(c *fiber.Ctx) error {
	maxQuestions, _ := strconv.Atoi(getSettingValue(mcqKeyMaxQuestions, "10"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ settings fetched successfully!", fiber.Map{
		"provider":      getSettingValue(mcqKeyProvider, ""),
		"model_name":    getSettingValue(mcqKeyModelName, ""),
		"max_questions": maxQuestions,
		"difficulty":    getSettingValue(mcqKeyDifficulty, "MIXED"),
	})
}

// UpdateMcqSettings stores the MCQ generation knobs
func UpdateMcqSettings(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMcqSettings").(*settingsValidator.McqSettingsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	pairs := map[string]string{
		mcqKeyProvider:     reqData.Provider,
		mcqKeyModelName:    reqData.ModelName,
		mcqKeyMaxQuestions: strconv.Itoa(reqData.MaxQuestions),
		mcqKeyDifficulty:   reqData.Difficulty,
	}
	for key, value := range pairs {
		if err := putSettingValue(db, key, value); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save MCQ settings!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "MCQ settings updated successfully!", fiber.Map{
		"provider":      reqData.Provider,
		"model_name":    reqData.ModelName,
		"max_questions": reqData.MaxQuestions,
		"difficulty":    reqData.Difficulty,
	})
}
