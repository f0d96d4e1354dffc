package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage string     `json:"profile_image" gorm:"default:''"`
	Name         string     `json:"name" gorm:"default:''"`
	Email        string     `json:"email" gorm:"unique;not null"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	Password     string     `json:"-" gorm:"not null"`
	Bio          string     `json:"bio"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLogin    *time.Time `json:"last_login"`
	IsDeleted    bool       `gorm:"default:false"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

func (u *User) IsInstructor() bool {
	return u.Role == "INSTRUCTOR"
}

// UserSetting is a per-user preference entry (theme, locale, notification
// toggles). One row per user/key pair.
type UserSetting struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;uniqueIndex:idx_user_setting_key;not null"`
	Key       string `json:"key" gorm:"uniqueIndex:idx_user_setting_key;not null"`
	Value     string `json:"value" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
	User      User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
