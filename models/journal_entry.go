package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// One journal slot for one calendar day. Each user has up to three slots
// per day (entry_index 0–2); saving an occupied slot overwrites it.
type JournalEntry struct {
	gorm.Model
	UserID             uint      `gorm:"uniqueIndex:idx_user_day_slot;not null"`
	Date               time.Time `gorm:"uniqueIndex:idx_user_day_slot;not null"` // truncate to local midnight
	EntryIndex         int       `gorm:"uniqueIndex:idx_user_day_slot;not null"`
	Text               string    `gorm:"type:text"`
	Mood               string    `gorm:"size:64"` // one of the six mood categories
	PolishedReflection string    `gorm:"type:text"`
	Flagged            bool
	Detail             *AIDetail
}

// AIDetail stores the raw generation output alongside its entry.
// Written with the entry in one transaction, never created on its own.
type AIDetail struct {
	gorm.Model
	JournalEntryID  uint   `gorm:"uniqueIndex;not null"`
	RawReflection   string `gorm:"type:text"`
	DetectedEmotion string `gorm:"size:128"` // free text from the model, pre-normalization
	FoodSuggestions datatypes.JSON
	FlaggedWord     string `gorm:"size:64"`
	GeneratedAt     time.Time
}
