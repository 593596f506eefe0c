package models

import "time"

// SocialAccount links a user to an identity at an external provider.
type SocialAccount struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Provider  string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_social_provider_uid" json:"provider"`
	UID       string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_social_provider_uid" json:"uid"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
