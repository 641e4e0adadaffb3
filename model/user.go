package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID uint64 `gorm:"primaryKey"`

	UserName string `gorm:"column:user_name;type:varchar(50);not null;unique"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique"`

	NickName string `gorm:"column:nick_name;type:varchar(80);not null;default:''"`

	IsActive bool `gorm:"column:is_active;not null;default:false"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}

// DisplayName returns the name shown in share listings and event messages.
func (u *User) DisplayName() string {
	if u.NickName != "" {
		return u.NickName
	}
	return u.UserName
}
