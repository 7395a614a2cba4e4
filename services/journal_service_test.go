package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.JournalEntry{},
		&models.AIDetail{},
		&models.AvoidedFood{},
		&models.Alert{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeGenerator struct {
	fn    func(ctx context.Context, text string, avoided []string) (*GenerationResult, error)
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
	f.calls++
	return f.fn(ctx, text, avoided)
}

func okResult(emotion string) *GenerationResult {
	return &GenerationResult{
		DetectedEmotion:    emotion,
		RawReflection:      "raw reflection",
		PolishedReflection: "polished reflection",
		FoodSuggestions: []FoodSuggestion{
			{Name: "Green tea", Reason: "gentle lift"},
		},
	}
}

func TestSaveEntryPersistsEntryAndDetail(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return okResult("feeling very sad today"), nil
	}}
	svc := NewJournalService(db, gen, nil)

	res, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "rough day at work")
	if err != nil {
		t.Fatal(err)
	}
	if res.Flagged {
		t.Fatal("unexpected flagged result")
	}
	if res.Entry.Mood != "Sad/Down" {
		t.Errorf("Mood = %q, want normalized Sad/Down", res.Entry.Mood)
	}

	var entry models.JournalEntry
	if err := db.First(&entry, "user_id = ? AND entry_index = ?", 1, 0).Error; err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	var detail models.AIDetail
	if err := db.First(&detail, "journal_entry_id = ?", entry.ID).Error; err != nil {
		t.Fatalf("detail not persisted: %v", err)
	}
	if detail.DetectedEmotion != "feeling very sad today" {
		t.Errorf("DetectedEmotion = %q", detail.DetectedEmotion)
	}
	if detail.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestSaveEntryFlaggedPersistsNothing(t *testing.T) {
	db := newTestDB(t)
	word := "hurt"
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return &GenerationResult{FlaggedWord: &word}, nil
	}}
	svc := NewJournalService(db, gen, nil)

	res, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "dark thoughts")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Flagged || res.FlaggedWord != "hurt" {
		t.Fatalf("want flagged outcome, got %+v", res)
	}

	var entries, details int64
	db.Model(&models.JournalEntry{}).Count(&entries)
	db.Model(&models.AIDetail{}).Count(&details)
	if entries != 0 || details != 0 {
		t.Errorf("flagged save persisted rows: entries=%d details=%d", entries, details)
	}
}

func TestSaveEntryOverwritesSlot(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return okResult("calm"), nil
	}}
	svc := NewJournalService(db, gen, nil)

	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 1, "first draft"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 1, "second draft"); err != nil {
		t.Fatal(err)
	}

	var entries []models.JournalEntry
	db.Find(&entries)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Text != "second draft" {
		t.Errorf("Text = %q, want overwrite", entries[0].Text)
	}

	var details int64
	db.Model(&models.AIDetail{}).Count(&details)
	if details != 1 {
		t.Errorf("got %d details, want 1", details)
	}
}

func TestSaveEntryRejectsBadIndex(t *testing.T) {
	svc := NewJournalService(newTestDB(t), &fakeGenerator{}, nil)
	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 3, "text"); err == nil {
		t.Error("expected error for entry index 3")
	}
	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), -1, "text"); err == nil {
		t.Error("expected error for negative entry index")
	}
}

func TestSaveEntryGenerationFailureLeavesStoreUntouched(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return nil, errors.New("timeout")
	}}
	svc := NewJournalService(db, gen, nil)

	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "text"); err == nil {
		t.Fatal("expected error")
	}
	var entries int64
	db.Model(&models.JournalEntry{}).Count(&entries)
	if entries != 0 {
		t.Errorf("failed save persisted %d entries", entries)
	}
}

func TestDeleteEntryRemovesDetailAndFreesSlot(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return okResult("calm"), nil
	}}
	svc := NewJournalService(db, gen, nil)

	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "text"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteEntry(context.Background(), 1, day("2024-05-10"), 0); err != nil {
		t.Fatal(err)
	}

	var entries, details int64
	db.Model(&models.JournalEntry{}).Count(&entries)
	db.Model(&models.AIDetail{}).Count(&details)
	if entries != 0 || details != 0 {
		t.Errorf("delete left rows behind: entries=%d details=%d", entries, details)
	}

	// the slot must be reusable after a clear
	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "again"); err != nil {
		t.Fatalf("slot not reusable after delete: %v", err)
	}
}

func TestMoodsForDayExcludesFlagged(t *testing.T) {
	db := newTestDB(t)
	svc := NewJournalService(db, &fakeGenerator{}, nil)

	d := dayStartLocal(day("2024-05-10"))
	db.Create(&models.JournalEntry{UserID: 1, Date: d, EntryIndex: 0, Mood: "Sad/Down"})
	db.Create(&models.JournalEntry{UserID: 1, Date: d, EntryIndex: 1, Flagged: true})

	moods, err := svc.MoodsForDay(context.Background(), 1, d)
	if err != nil {
		t.Fatal(err)
	}
	if len(moods) != 1 || moods[0] != "Sad/Down" {
		t.Errorf("moods = %v, want only the non-flagged entry", moods)
	}
}

func TestSaveEntryForwardsAvoidedFoods(t *testing.T) {
	db := newTestDB(t)
	var gotAvoided []string
	gen := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		gotAvoided = avoided
		return okResult("calm"), nil
	}}
	svc := NewJournalService(db, gen, nil)

	foods := NewAvoidedFoodService(db)
	if _, err := foods.Add(context.Background(), 1, "Ice Cream"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "text"); err != nil {
		t.Fatal(err)
	}
	if len(gotAvoided) != 1 || gotAvoided[0] != "Ice Cream" {
		t.Errorf("avoided foods sent to generator = %v", gotAvoided)
	}
}

func TestRefreshSuggestionsDiscardsStaleCompletion(t *testing.T) {
	db := newTestDB(t)
	seed := &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		return okResult("calm"), nil
	}}
	svc := NewJournalService(db, seed, nil)
	if _, err := svc.SaveEntry(context.Background(), 1, day("2024-05-10"), 0, "text"); err != nil {
		t.Fatal(err)
	}

	// The first refresh's generation call kicks off a second refresh
	// that completes first, so the outer (older) completion must be
	// discarded: last applied wins, not last issued.
	var gen *fakeGenerator
	gen = &fakeGenerator{fn: func(ctx context.Context, text string, avoided []string) (*GenerationResult, error) {
		if gen.calls == 1 {
			if _, err := svc.RefreshSuggestions(ctx, 1, day("2024-05-10"), 0); err != nil {
				t.Errorf("nested refresh failed: %v", err)
			}
			res := okResult("calm")
			res.FoodSuggestions = []FoodSuggestion{{Name: "Stale pick", Reason: "too late"}}
			return res, nil
		}
		res := okResult("calm")
		res.FoodSuggestions = []FoodSuggestion{{Name: "Fresh pick", Reason: "latest request"}}
		return res, nil
	}}
	svc.gen = gen

	_, err := svc.RefreshSuggestions(context.Background(), 1, day("2024-05-10"), 0)
	if !errors.Is(err, ErrStaleRefresh) {
		t.Fatalf("err = %v, want ErrStaleRefresh", err)
	}

	var detail models.AIDetail
	if err := db.First(&detail).Error; err != nil {
		t.Fatal(err)
	}
	if got := string(detail.FoodSuggestions); !strings.Contains(got, "Fresh pick") || strings.Contains(got, "Stale pick") {
		t.Errorf("stored suggestions = %s, want the newer request's result", got)
	}
}
