package settingsValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type UpsertSettingRequest struct {
	Key         string `json:"key" validate:"required,min=1,max=100"`
	Value       string `json:"value" validate:"max=10000"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsEncrypted *bool  `json:"is_encrypted"`
}

type UpdateApiConfigRequest struct {
	Provider    string   `json:"provider" validate:"required,min=2,max=100"`
	BaseURL     string   `json:"base_url" validate:"omitempty,url"`
	ApiKey      string   `json:"api_key" validate:"omitempty,max=500"`
	ModelName   string   `json:"model_name" validate:"omitempty,max=100"`
	MaxTokens   *int     `json:"max_tokens" validate:"omitempty,gte=1,lte=32768"`
	Temperature *float32 `json:"temperature" validate:"omitempty,gte=0,lte=2"`
	IsActive    *bool    `json:"is_active"`
}

type McqSettingsRequest struct {
	Provider     string `json:"provider" validate:"required,min=2,max=100"`
	ModelName    string `json:"model_name" validate:"required,min=1,max=100"`
	MaxQuestions int    `json:"max_questions" validate:"required,gte=1,lte=50"`
	Difficulty   string `json:"difficulty" validate:"required,oneof=EASY MEDIUM HARD MIXED"`
}

// SettingKey validates the :key route param
func SettingKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid setting key!", nil)
		}
		c.Locals("settingKey", key)
		return c.Next()
	}
}

func UpsertSetting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpsertSettingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Key = strings.TrimSpace(reqData.Key)

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSetting", reqData)
		return c.Next()
	}
}

func UpdateApiConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateApiConfigRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Provider = strings.TrimSpace(reqData.Provider)

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApiConfig", reqData)
		return c.Next()
	}
}

// Provider validates the :provider route param
func Provider() fiber.Handler {
	return func(c *fiber.Ctx) error {
		provider := strings.TrimSpace(c.Params("provider"))
		if provider == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid provider!", nil)
		}
		c.Locals("provider", provider)
		return c.Next()
	}
}

func McqSettings() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(McqSettingsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMcqSettings", reqData)
		return c.Next()
	}
}
