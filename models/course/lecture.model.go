package course

import "gorm.io/gorm"

// Lecture is a unit of content within a module
type Lecture struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, MCQ
	TextContent string `json:"text_content" gorm:"type:text"`      // For TEXT type
	VideoURL    string `json:"video_url"`                          // For VIDEO type
	Duration    int    `json:"duration" gorm:"default:0"`          // minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"`       // Order within module
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// LectureSection is an ordered block of text inside a lecture body
type LectureSection struct {
	gorm.Model
	LectureID  uint    `json:"lecture_id" gorm:"index;not null"`
	Heading    string  `json:"heading"`
	Body       string  `json:"body" gorm:"type:text"`
	OrderIndex int     `json:"order_index" gorm:"default:0"`
	IsDeleted  bool    `gorm:"default:false"`
	Lecture    Lecture `json:"-" gorm:"foreignKey:LectureID;constraint:OnDelete:CASCADE"`
}

// LectureAttachment is an uploaded file tied to a lecture
type LectureAttachment struct {
	gorm.Model
	LectureID uint    `json:"lecture_id" gorm:"index;not null"`
	FileName  string  `json:"file_name"`
	FilePath  string  `json:"file_path"`
	MimeType  string  `json:"mime_type"`
	FileSize  int64   `json:"file_size" gorm:"default:0"`
	IsDeleted bool    `gorm:"default:false"`
	Lecture   Lecture `json:"-" gorm:"foreignKey:LectureID;constraint:OnDelete:CASCADE"`
}
