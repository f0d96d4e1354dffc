package models

import (
	"time"

	"gorm.io/gorm"
)

// SystemSetting is a single installation-wide key/value pair. Values of
// encrypted settings must never leave the service unmasked.
type SystemSetting struct {
	gorm.Model
	Key         string `json:"key" gorm:"uniqueIndex;not null"`
	Value       string `json:"value" gorm:"type:text"`
	Category    string `json:"category" gorm:"default:'general'"` // general, mcq, email, ...
	Description string `json:"description"`
	IsEncrypted bool   `json:"is_encrypted" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ApiConfiguration holds credentials and tuning knobs for an external
// provider (e.g. the MCQ generation API).
type ApiConfiguration struct {
	gorm.Model
	Provider     string     `json:"provider" gorm:"uniqueIndex;not null"`
	BaseURL      string     `json:"base_url"`
	ApiKey       string     `json:"api_key"` // masked in responses
	ModelName    string     `json:"model_name"`
	MaxTokens    int        `json:"max_tokens" gorm:"default:1024"`
	Temperature  float32    `json:"temperature" gorm:"default:0.7"`
	IsActive     bool       `json:"is_active" gorm:"default:false"`
	LastTestedAt *time.Time `json:"last_tested_at"`
	LastTestOK   bool       `json:"last_test_ok" gorm:"default:false"`
	IsDeleted    bool       `gorm:"default:false"`
}
