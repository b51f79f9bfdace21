package models

import "time"

type User struct {
	BaseModel
	Username      string `gorm:"uniqueIndex;not null" json:"username"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"not null" json:"-"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	ResetToken    string `json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	// Relations
	Confessions []AnonymousConfession `gorm:"foreignKey:UserID" json:"-"`
}
