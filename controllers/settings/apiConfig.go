package settingsControllers

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	settingsValidator "lms/validators/settings"
)

// maskApiConfig hides the API key before serialization
func maskApiConfig(cfg *models.ApiConfiguration) {
	cfg.ApiKey = utils.MaskSecret(cfg.ApiKey)
}

// ListApiConfigs lists all provider configurations with masked keys
func ListApiConfigs(c *fiber.Ctx) error {
	var configs []models.ApiConfiguration
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("provider asc").
		Find(&configs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch API configurations!", nil)
	}

	for i := range configs {
		maskApiConfig(&configs[i])
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "API configurations fetched successfully!", configs)
}

// GetApiConfig fetches one provider configuration with a masked key
func GetApiConfig(c *fiber.Ctx) error {
	provider := c.Locals("provider").(string)

	var cfg models.ApiConfiguration
	if err := database.Database.Db.Where("provider = ? AND is_deleted = ?", provider, false).First(&cfg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "API configuration not found!", nil)
	}

	maskApiConfig(&cfg)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "API configuration fetched successfully!", cfg)
}

// UpdateApiConfig creates or updates a provider configuration. An api_key
// equal to the mask placeholder keeps the stored key.
func UpdateApiConfig(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedApiConfig").(*settingsValidator.UpdateApiConfigRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var cfg models.ApiConfiguration
	err := db.Where("provider = ?", reqData.Provider).First(&cfg).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save API configuration!", nil)
	}

	created := err == gorm.ErrRecordNotFound
	if created {
		cfg = models.ApiConfiguration{Provider: reqData.Provider}
	}

	if reqData.BaseURL != "" {
		cfg.BaseURL = reqData.BaseURL
	}
	if reqData.ApiKey != "" && !utils.IsMasked(reqData.ApiKey) {
		cfg.ApiKey = reqData.ApiKey
	}
	if reqData.ModelName != "" {
		cfg.ModelName = reqData.ModelName
	}
	if reqData.MaxTokens != nil {
		cfg.MaxTokens = *reqData.MaxTokens
	}
	if reqData.Temperature != nil {
		cfg.Temperature = *reqData.Temperature
	}
	if reqData.IsActive != nil {
		cfg.IsActive = *reqData.IsActive
	}
	cfg.IsDeleted = false

	if err := db.Save(&cfg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save API configuration!", nil)
	}

	maskApiConfig(&cfg)
	if created {
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "API configuration created successfully!", cfg)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "API configuration updated successfully!", cfg)
}

// TestApiConfig issues a live request against the configured base URL and
// records the outcome
func TestApiConfig(c *fiber.Ctx) error {
	provider := c.Locals("provider").(string)

	var cfg models.ApiConfiguration
	if err := database.Database.Db.Where("provider = ? AND is_deleted = ?", provider, false).First(&cfg).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "API configuration not found!", nil)
	}

	if cfg.BaseURL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No base URL configured!", nil)
	}

	client := resty.New().SetTimeout(10 * time.Second)
	req := client.R()
	if cfg.ApiKey != "" {
		req.SetHeader("Authorization", "Bearer "+cfg.ApiKey)
	}

	start := time.Now()
	resp, err := req.Get(cfg.BaseURL)
	latency := time.Since(start)

	testedAt := time.Now()
	cfg.LastTestedAt = &testedAt
	cfg.LastTestOK = err == nil && resp.StatusCode() < 500
	if saveErr := database.Database.Db.Save(&cfg).Error; saveErr != nil {
		log.Printf("Error recording API test result for %s: %v", provider, saveErr)
	}

	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Provider is unreachable!", fiber.Map{
			"error": err.Error(),
		})
	}

	maskApiConfig(&cfg)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Provider test completed.", fiber.Map{
		"status_code": resp.StatusCode(),
		"latency_ms":  latency.Milliseconds(),
		"ok":          cfg.LastTestOK,
		"config":      cfg,
	})
}
