package settingRoutes

import (
	"github.com/gofiber/fiber/v2"

	settingsControllers "lms/controllers/settings"
	"lms/middleware"
	settingsValidator "lms/validators/settings"
)

// SetupSettingsRoutes sets up system settings, API configuration and MCQ
// generation settings. Everything here is admin only.
func SetupSettingsRoutes(app *fiber.App) {
	settingsGroup := app.Group("/settings", middleware.JWTMiddleware, middleware.AdminOnly)

	// API configuration
	settingsGroup.Get("/api-config/list", settingsControllers.ListApiConfigs)
	settingsGroup.Put("/api-config", settingsValidator.UpdateApiConfig(), settingsControllers.UpdateApiConfig)
	settingsGroup.Get("/api-config/:provider", settingsValidator.Provider(), settingsControllers.GetApiConfig)
	settingsGroup.Post("/api-config/:provider/test", settingsValidator.Provider(), settingsControllers.TestApiConfig)

	// MCQ generation settings
	settingsGroup.Get("/mcq", settingsControllers.GetMcqSettings)
	settingsGroup.Put("/mcq", settingsValidator.McqSettings(), settingsControllers.UpdateMcqSettings)

	// System settings
	settingsGroup.Get("/list", settingsControllers.ListSettings)
	settingsGroup.Put("/", settingsValidator.UpsertSetting(), settingsControllers.UpsertSetting)
	settingsGroup.Get("/:key", settingsValidator.SettingKey(), settingsControllers.GetSetting)
	settingsGroup.Delete("/:key", settingsValidator.SettingKey(), settingsControllers.DeleteSetting)
}
