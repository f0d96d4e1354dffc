package course

import (
	"gorm.io/gorm"

	"lms/models"
)

type Enrollment struct {
	gorm.Model
	UserID    uint        `json:"user_id" gorm:"index;not null"`
	CourseID  uint        `json:"course_id" gorm:"index;not null"`
	Status    string      `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, COMPLETED, DROPPED
	IsDeleted bool        `gorm:"default:false"`
	User      models.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course    Course      `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
