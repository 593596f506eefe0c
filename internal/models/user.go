package models

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type User struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Gender         Gender     `gorm:"type:varchar(6);not null" json:"gender"`
	ProfilePicture string     `gorm:"type:varchar(512)" json:"profile_picture"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	IsStaff        bool       `gorm:"not null" json:"is_staff"`
	IsSuperuser    bool       `gorm:"not null" json:"is_superuser"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	SocialAccounts []SocialAccount `gorm:"foreignKey:UserID" json:"-"`
}

// HasUsablePassword is false for accounts created through social login.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}
