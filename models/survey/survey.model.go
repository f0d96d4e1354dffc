package survey

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/models"
)

// Survey statuses
const (
	StatusDraft  = "DRAFT"
	StatusActive = "ACTIVE"
	StatusClosed = "CLOSED"
)

// Question types
const (
	QuestionText    = "TEXT"
	QuestionMCQ     = "MCQ"
	QuestionRating  = "RATING"
	QuestionBoolean = "BOOLEAN"
)

// Survey is a questionnaire owned by an instructor or admin, optionally
// attached to a course.
type Survey struct {
	gorm.Model
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CourseID    *uint       `json:"course_id" gorm:"index"`
	CreatedByID uint        `json:"created_by_id" gorm:"index;not null"`
	Status      string      `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, CLOSED
	StartsAt    *time.Time  `json:"starts_at"`
	EndsAt      *time.Time  `json:"ends_at"`
	IsAnonymous bool        `json:"is_anonymous" gorm:"default:false"`
	IsDeleted   bool        `gorm:"default:false"`
	CreatedBy   models.User `json:"-" gorm:"foreignKey:CreatedByID"`
}

// SurveyQuestion is one question within a survey. Options holds the MCQ
// choices (or rating scale bounds) as a JSON array.
type SurveyQuestion struct {
	gorm.Model
	SurveyID   uint           `json:"survey_id" gorm:"index;not null"`
	Prompt     string         `json:"prompt"`
	Type       string         `json:"type" gorm:"default:'TEXT'"` // TEXT, MCQ, RATING, BOOLEAN
	Options    datatypes.JSON `json:"options"`
	IsRequired bool           `json:"is_required" gorm:"default:false"`
	OrderIndex int            `json:"order_index" gorm:"default:0"`
	IsDeleted  bool           `gorm:"default:false"`
	Survey     Survey         `json:"-" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// SurveyResponse is one submission. Answers maps question ID to the given
// answer, stored as JSON. UserID is nil for anonymous submissions.
type SurveyResponse struct {
	gorm.Model
	SurveyID    uint           `json:"survey_id" gorm:"index;not null"`
	UserID      *uint          `json:"user_id" gorm:"index"`
	Answers     datatypes.JSON `json:"answers"`
	SubmittedAt time.Time      `json:"submitted_at"`
	IsDeleted   bool           `gorm:"default:false"`
	Survey      Survey         `json:"-" gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}
