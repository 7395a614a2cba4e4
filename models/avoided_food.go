package models

import (
	"time"

	"gorm.io/gorm"
)

// A food suggestion the user dismissed. Set semantics: at most one row
// per (user_id, food_key); food_key is the slug from utils.FoodKeySlug.
type AvoidedFood struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex:idx_user_food;not null"`
	FoodKey   string `gorm:"uniqueIndex:idx_user_food;size:128;not null"`
	Food      string `gorm:"size:128;not null"`
	AvoidedAt time.Time
}
