package utils

import "strings"

// MoodCategory is one of the six fixed mood labels used everywhere an
// entry's mood is stored or displayed.
type MoodCategory string

const (
	MoodHappy    MoodCategory = "Happy / Excited / In Love"
	MoodSad      MoodCategory = "Sad/Down"
	MoodStressed MoodCategory = "Stressed/Overwhelmed"
	MoodAnxious  MoodCategory = "Anxious/Nervous"
	MoodTired    MoodCategory = "Tired/Low Energy"
	MoodCalm     MoodCategory = "Calm/Content"
)

var MoodCategories = []MoodCategory{
	MoodHappy, MoodSad, MoodStressed, MoodAnxious, MoodTired, MoodCalm,
}

// Exact matches against the lowercased, trimmed input. Includes the
// punctuation variants of the category names themselves so a category
// echoed back by the model round-trips.
var moodSynonyms = map[string]MoodCategory{
	"happy / excited / in love":   MoodHappy,
	"happy/excited/in love":       MoodHappy,
	"happy or excited or in love": MoodHappy,
	"sad/down":                    MoodSad,
	"sad / down":                  MoodSad,
	"sad or down":                 MoodSad,
	"stressed/overwhelmed":        MoodStressed,
	"stressed / overwhelmed":      MoodStressed,
	"stressed or overwhelmed":     MoodStressed,
	"anxious/nervous":             MoodAnxious,
	"anxious / nervous":           MoodAnxious,
	"anxious or nervous":          MoodAnxious,
	"tired/low energy":            MoodTired,
	"tired / low energy":          MoodTired,
	"tired or low energy":         MoodTired,
	"calm/content":                MoodCalm,
	"calm / content":              MoodCalm,
	"calm or content":             MoodCalm,

	"happy":       MoodHappy,
	"happiness":   MoodHappy,
	"joy":         MoodHappy,
	"joyful":      MoodHappy,
	"excited":     MoodHappy,
	"elated":      MoodHappy,
	"cheerful":    MoodHappy,
	"in love":     MoodHappy,
	"loved":       MoodHappy,
	"sad":         MoodSad,
	"sadness":     MoodSad,
	"down":        MoodSad,
	"blue":        MoodSad,
	"gloomy":      MoodSad,
	"depressed":   MoodSad,
	"heartbroken": MoodSad,
	"lonely":      MoodSad,
	"melancholy":  MoodSad,
	"stressed":    MoodStressed,
	"stress":      MoodStressed,
	"overwhelmed": MoodStressed,
	"frustrated":  MoodStressed,
	"angry":       MoodStressed,
	"irritated":   MoodStressed,
	"burned out":  MoodStressed,
	"burnt out":   MoodStressed,
	"anxious":     MoodAnxious,
	"anxiety":     MoodAnxious,
	"nervous":     MoodAnxious,
	"worried":     MoodAnxious,
	"uneasy":      MoodAnxious,
	"scared":      MoodAnxious,
	"afraid":      MoodAnxious,
	"tired":       MoodTired,
	"exhausted":   MoodTired,
	"sleepy":      MoodTired,
	"fatigued":    MoodTired,
	"drained":     MoodTired,
	"low energy":  MoodTired,
	"calm":        MoodCalm,
	"content":     MoodCalm,
	"peaceful":    MoodCalm,
	"relaxed":     MoodCalm,
	"grateful":    MoodCalm,
	"serene":      MoodCalm,
	"at ease":     MoodCalm,
	"chill":       MoodCalm,
}

// Containment fallback, checked front to back; the first key contained
// in the input wins. The order is part of the contract: e.g.
// "stressed and tired" resolves to Stressed/Overwhelmed via "stress"
// before "tired" is ever considered.
var moodKeys = []struct {
	key  string
	mood MoodCategory
}{
	{"sad", MoodSad},
	{"down", MoodSad},
	{"depress", MoodSad},
	{"anxious", MoodAnxious},
	{"nervous", MoodAnxious},
	{"worri", MoodAnxious},
	{"stress", MoodStressed},
	{"overwhelm", MoodStressed},
	{"frustrat", MoodStressed},
	{"angry", MoodStressed},
	{"tired", MoodTired},
	{"exhaust", MoodTired},
	{"sleepy", MoodTired},
	{"fatigue", MoodTired},
	{"calm", MoodCalm},
	{"peaceful", MoodCalm},
	{"content", MoodCalm},
	{"relax", MoodCalm},
	{"grateful", MoodCalm},
	{"happy", MoodHappy},
	{"excit", MoodHappy},
	{"joy", MoodHappy},
	{"love", MoodHappy},
}

// NormalizeEmotion maps a free-form detected-emotion string from the
// generation API onto exactly one MoodCategory. Total function: unknown
// input falls back to MoodHappy rather than failing, so an unmapped
// value can never reach storage.
func NormalizeEmotion(raw string) MoodCategory {
	s := strings.ToLower(strings.TrimSpace(raw))
	if m, ok := moodSynonyms[s]; ok {
		return m
	}
	for _, k := range moodKeys {
		if strings.Contains(s, k.key) {
			return k.mood
		}
	}
	return MoodHappy
}

func IsMoodCategory(s string) bool {
	for _, m := range MoodCategories {
		if string(m) == s {
			return true
		}
	}
	return false
}
