package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID         string `gorm:"uniqueIndex;not null"` // public handle, e.g. "mira48213"
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FirstName      string
	LastName       string
	ProfilePicture string
	Verified       bool
	VerifyCode     string
	ResetToken     string
	ResetTokenExp  time.Time
	Disabled       bool
}
