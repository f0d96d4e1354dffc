package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	surveyModels "lms/models/survey"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SURVEY-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processSurveyWindows handles DRAFT -> ACTIVE and ACTIVE -> CLOSED transitions
// for surveys with a scheduled window.
func processSurveyWindows() {
	db := database.Database.Db
	now := time.Now()

	// Auto-activate: DRAFT -> ACTIVE when starts_at reached
	var toOpen []surveyModels.Survey
	if err := db.Where("status = ? AND starts_at IS NOT NULL AND starts_at <= ? AND is_deleted = false",
		surveyModels.StatusDraft, now).Find(&toOpen).Error; err != nil {
		logScheduler("Error fetching surveys to open: " + err.Error())
		return
	}

	for _, s := range toOpen {
		// Never resurrect a survey whose window already ended
		if s.EndsAt != nil && !s.EndsAt.After(now) {
			continue
		}
		s.Status = surveyModels.StatusActive
		if err := db.Save(&s).Error; err != nil {
			logScheduler("Error activating survey: " + err.Error())
			continue
		}
		logScheduler("Survey auto-activated: " + s.Title)
	}

	// Auto-close: ACTIVE -> CLOSED when ends_at passed
	var toClose []surveyModels.Survey
	if err := db.Where("status = ? AND ends_at IS NOT NULL AND ends_at <= ? AND is_deleted = false",
		surveyModels.StatusActive, now).Find(&toClose).Error; err != nil {
		logScheduler("Error fetching surveys to close: " + err.Error())
		return
	}

	for _, s := range toClose {
		s.Status = surveyModels.StatusClosed
		if err := db.Save(&s).Error; err != nil {
			logScheduler("Error closing survey: " + err.Error())
			continue
		}
		logScheduler("Survey auto-closed: " + s.Title)
	}
}

// InitializeSurveyScheduler starts the cron job that opens and closes
// scheduled surveys.
func InitializeSurveyScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1m", processSurveyWindows); err != nil {
		logScheduler("Failed to register survey window job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Survey scheduler started")
	return c
}
