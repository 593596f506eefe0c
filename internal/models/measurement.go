package models

import "time"

type Measurement struct {
	ID      uint64    `gorm:"primarykey" json:"id"`
	Date    time.Time `gorm:"type:date;not null" json:"date"`
	Weight  int       `gorm:"not null;default:0" json:"weight"`
	Height  int       `gorm:"not null;default:0" json:"height"`
	Neck    int       `gorm:"not null;default:0" json:"neck"`
	Chest   int       `gorm:"not null;default:0" json:"chest"`
	Biceps  int       `gorm:"not null;default:0" json:"biceps"`
	Forearm int       `gorm:"not null;default:0" json:"forearm"`
	Abdomen int       `gorm:"not null;default:0" json:"abdomen"`
	Hips    int       `gorm:"not null;default:0" json:"hips"`
	Thigh   int       `gorm:"not null;default:0" json:"thigh"`
	Image   string    `gorm:"type:varchar(512)" json:"image"`
	UserID  uint64    `gorm:"not null;index" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// UserGoal holds the current and target weight of a user.
type UserGoal struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	CurrentWeight int    `gorm:"not null;default:0" json:"current_weight"`
	GoalWeight    int    `gorm:"not null;default:0" json:"goal_weight"`
	UserID        uint64 `gorm:"not null;index" json:"user_id"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
