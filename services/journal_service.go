package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxEntriesPerDay caps the journal at three slots per calendar day.
const MaxEntriesPerDay = 3

var streakMilestones = []int{3, 7, 14, 30, 100, 365}

// ErrStaleRefresh is returned when a suggestion refresh finished after
// a newer refresh was issued for the same slot; its result is discarded
// so an out-of-order completion can never overwrite fresher data.
var ErrStaleRefresh = errors.New("superseded by a newer suggestion refresh")

type JournalService struct {
	db     *gorm.DB
	gen    Generator
	alerts *AlertBus

	mu  sync.Mutex
	seq map[string]uint64 // per-slot refresh sequence numbers
}

func NewJournalService(db *gorm.DB, gen Generator, alerts *AlertBus) *JournalService {
	return &JournalService{db: db, gen: gen, alerts: alerts, seq: make(map[string]uint64)}
}

type SaveResult struct {
	Flagged     bool                 `json:"flagged"`
	FlaggedWord string               `json:"flagged_word,omitempty"`
	Entry       *models.JournalEntry `json:"entry,omitempty"`
	Suggestions []FoodSuggestion     `json:"food_suggestions,omitempty"`
}

// SaveEntry runs the text through the generation API, normalizes the
// detected emotion, and writes the entry plus its AI detail in one
// transaction. A flagged response persists nothing and comes back as a
// distinct outcome, not an error.
func (s *JournalService) SaveEntry(ctx context.Context, userID uint, day time.Time, entryIndex int, text string) (*SaveResult, error) {
	if entryIndex < 0 || entryIndex >= MaxEntriesPerDay {
		return nil, fmt.Errorf("entry index must be between 0 and %d", MaxEntriesPerDay-1)
	}
	if text == "" {
		return nil, errors.New("entry text required")
	}
	day = dayStartLocal(day)

	res, err := s.gen.Generate(ctx, text, s.avoidedNames(userID))
	if err != nil {
		return nil, err
	}

	if res.Flagged() {
		if s.alerts != nil {
			s.alerts.Emit(userID, "warning", fmt.Sprintf("Your entry for %s was not saved: it contains a flagged term.", day.Format("2006-01-02")))
		}
		return &SaveResult{Flagged: true, FlaggedWord: *res.FlaggedWord}, nil
	}

	mood := utils.NormalizeEmotion(res.DetectedEmotion)
	sug, err := json.Marshal(res.FoodSuggestions)
	if err != nil {
		return nil, err
	}

	var entry models.JournalEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND date = ? AND entry_index = ?", userID, day, entryIndex).
			First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = models.JournalEntry{UserID: userID, Date: day, EntryIndex: entryIndex}
		} else if err != nil {
			return err
		}
		entry.Text = text
		entry.Mood = string(mood)
		entry.PolishedReflection = res.PolishedReflection
		entry.Flagged = false
		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		var detail models.AIDetail
		err = tx.Where("journal_entry_id = ?", entry.ID).First(&detail).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			detail = models.AIDetail{JournalEntryID: entry.ID}
		} else if err != nil {
			return err
		}
		detail.RawReflection = res.RawReflection
		detail.DetectedEmotion = res.DetectedEmotion
		detail.FoodSuggestions = datatypes.JSON(sug)
		detail.FlaggedWord = ""
		detail.GeneratedAt = time.Now()
		return tx.Save(&detail).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyStreak(userID, day)

	return &SaveResult{Entry: &entry, Suggestions: res.FoodSuggestions}, nil
}

// ListEntries returns the day's entries ordered by slot.
func (s *JournalService) ListEntries(ctx context.Context, userID uint, day time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, dayStartLocal(day)).
		Order("entry_index asc").
		Find(&entries).Error
	return entries, err
}

// ListRange returns all non-flagged entries with dates in [from, to].
func (s *JournalService) ListRange(ctx context.Context, userID uint, from, to time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ? AND flagged = ?",
			userID, dayStartLocal(from), dayStartLocal(to), false).
		Order("date asc, entry_index asc").
		Find(&entries).Error
	return entries, err
}

// EntryDetail loads the AI detail for one slot.
func (s *JournalService) EntryDetail(ctx context.Context, userID uint, day time.Time, entryIndex int) (*models.AIDetail, error) {
	entry, err := s.findEntry(ctx, userID, day, entryIndex)
	if err != nil {
		return nil, err
	}
	var detail models.AIDetail
	if err := s.db.WithContext(ctx).Where("journal_entry_id = ?", entry.ID).First(&detail).Error; err != nil {
		return nil, errors.New("no AI detail for this entry")
	}
	return &detail, nil
}

// DeleteEntry clears a slot: entry and detail go together. Hard delete,
// so the (user, day, slot) key can be reused by a later save.
func (s *JournalService) DeleteEntry(ctx context.Context, userID uint, day time.Time, entryIndex int) error {
	entry, err := s.findEntry(ctx, userID, day, entryIndex)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("journal_entry_id = ?", entry.ID).Delete(&models.AIDetail{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.JournalEntry{}, entry.ID).Error
	})
}

// MoodsForDay is the DayLookup used by the activity aggregator: moods
// of the user's non-flagged entries for one day.
func (s *JournalService) MoodsForDay(ctx context.Context, userID uint, day time.Time) ([]string, error) {
	var moods []string
	err := s.db.WithContext(ctx).Model(&models.JournalEntry{}).
		Where("user_id = ? AND date = ? AND flagged = ?", userID, dayStartLocal(day), false).
		Order("entry_index asc").
		Pluck("mood", &moods).Error
	return moods, err
}

// RefreshSuggestions regenerates food suggestions for a saved entry.
// Each slot carries a monotonically increasing sequence number; a
// completion that is no longer the latest issued for its slot is
// discarded (ErrStaleRefresh) instead of written back.
func (s *JournalService) RefreshSuggestions(ctx context.Context, userID uint, day time.Time, entryIndex int) ([]FoodSuggestion, error) {
	day = dayStartLocal(day)
	entry, err := s.findEntry(ctx, userID, day, entryIndex)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d/%s/%d", userID, day.Format("2006-01-02"), entryIndex)
	s.mu.Lock()
	s.seq[key]++
	mySeq := s.seq[key]
	s.mu.Unlock()

	res, err := s.gen.Generate(ctx, entry.Text, s.avoidedNames(userID))
	if err != nil {
		return nil, err
	}
	if res.Flagged() {
		return nil, fmt.Errorf("suggestions unavailable: content flagged (%s)", *res.FlaggedWord)
	}

	s.mu.Lock()
	latest := s.seq[key]
	s.mu.Unlock()
	if mySeq != latest {
		return nil, ErrStaleRefresh
	}

	sug, err := json.Marshal(res.FoodSuggestions)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(&models.AIDetail{}).
		Where("journal_entry_id = ?", entry.ID).
		Updates(map[string]any{
			"food_suggestions": datatypes.JSON(sug),
			"generated_at":     time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return res.FoodSuggestions, nil
}

func (s *JournalService) findEntry(ctx context.Context, userID uint, day time.Time, entryIndex int) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND entry_index = ?", userID, dayStartLocal(day), entryIndex).
		First(&entry).Error
	if err != nil {
		return nil, errors.New("entry not found")
	}
	return &entry, nil
}

func (s *JournalService) avoidedNames(userID uint) []string {
	var names []string
	// best effort: a failed read just means no exclusions this round
	_ = s.db.Model(&models.AvoidedFood{}).
		Where("user_id = ?", userID).
		Order("food asc").
		Pluck("food", &names).Error
	return names
}

// notifyStreak emits an alert when the save completes a milestone run
// of consecutive journaling days ending at day.
func (s *JournalService) notifyStreak(userID uint, day time.Time) {
	if s.alerts == nil {
		return
	}
	streak := 0
	for d := day; ; d = d.AddDate(0, 0, -1) {
		var n int64
		if err := s.db.Model(&models.JournalEntry{}).
			Where("user_id = ? AND date = ? AND flagged = ?", userID, d, false).
			Count(&n).Error; err != nil || n == 0 {
			break
		}
		streak++
		if streak > 366 {
			break
		}
	}
	for _, m := range streakMilestones {
		if streak == m {
			s.alerts.Emit(userID, "info", fmt.Sprintf("You're on a %d-day journaling streak!", streak))
			return
		}
	}
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}
