package services

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DayLookup returns the moods of a user's non-flagged entries for one
// calendar day. A failed lookup is degraded to "no entries for that
// day" by the aggregator; it never aborts a summary.
type DayLookup func(ctx context.Context, userID uint, day time.Time) ([]string, error)

type ActivityService struct {
	lookup DayLookup
}

func NewActivityService(lookup DayLookup) *ActivityService {
	return &ActivityService{lookup: lookup}
}

type ActivitySummary struct {
	// year-month ("2006-01") → mood category → count of non-flagged
	// entries with a non-empty mood.
	MonthlyMoodHistogram map[string]map[string]int `json:"monthly_mood_histogram"`
	CurrentStreak        int                       `json:"current_streak"`
	LongestStreak        int                       `json:"longest_streak"`
	TotalEntries         int                       `json:"total_entries"`
	EarliestActiveDate   string                    `json:"earliest_active_date,omitempty"`
}

// Summary scans [from, to] (inclusive calendar days). Per-day lookups
// run concurrently; results land in a slice indexed by day offset so
// the outcome never depends on completion order. CurrentStreak walks
// backward from today and stops at the first day without entries.
func (s *ActivityService) Summary(ctx context.Context, userID uint, from, to, today time.Time) (*ActivitySummary, error) {
	from = dayStart(from)
	to = dayStart(to)
	today = dayStart(today)
	if to.Before(from) {
		return nil, errors.New("`to` must be on/after `from`")
	}

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	results := make([][]string, len(days))
	var wg sync.WaitGroup
	for i, d := range days {
		wg.Add(1)
		go func(i int, d time.Time) {
			defer wg.Done()
			moods, err := s.lookup(ctx, userID, d)
			if err != nil {
				return // failed day counts as empty
			}
			results[i] = moods
		}(i, d)
	}
	wg.Wait()

	out := &ActivitySummary{MonthlyMoodHistogram: map[string]map[string]int{}}
	active := make(map[string]bool, len(days))
	run := 0
	for i, d := range days {
		moods := results[i]
		if len(moods) == 0 {
			run = 0
			continue
		}
		active[d.Format("2006-01-02")] = true
		run++
		if run > out.LongestStreak {
			out.LongestStreak = run
		}
		if out.EarliestActiveDate == "" {
			out.EarliestActiveDate = d.Format("2006-01-02")
		}
		month := d.Format("2006-01")
		for _, m := range moods {
			if m == "" {
				continue
			}
			if out.MonthlyMoodHistogram[month] == nil {
				out.MonthlyMoodHistogram[month] = map[string]int{}
			}
			out.MonthlyMoodHistogram[month][m]++
			out.TotalEntries++
		}
	}

	for d := today; active[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		out.CurrentStreak++
	}

	return out, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
