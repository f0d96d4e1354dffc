package course

import (
	"gorm.io/gorm"

	"lms/models"
)

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	InstructorID uint        `json:"instructor_id" gorm:"index;not null"`
	Status       string      `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL string      `json:"thumbnail_url"`
	IsPublished  bool        `json:"is_published" gorm:"default:false"`
	IsDeleted    bool        `gorm:"default:false"`
	Instructor   models.User `json:"-" gorm:"foreignKey:InstructorID"`
}

// CourseModule represents a section/module within a course
type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
	Course      Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
