package utils

import "testing"

func TestNormalizeEmotionSynonymTable(t *testing.T) {
	for input, want := range moodSynonyms {
		if got := NormalizeEmotion(input); got != want {
			t.Errorf("NormalizeEmotion(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeEmotionCategoryRoundTrip(t *testing.T) {
	for _, m := range MoodCategories {
		if got := NormalizeEmotion(string(m)); got != m {
			t.Errorf("NormalizeEmotion(%q) = %q, want round-trip", m, got)
		}
	}

	// case and whitespace variants
	cases := map[string]MoodCategory{
		"  SAD/DOWN  ":              MoodSad,
		"Tired or Low Energy":       MoodTired,
		"HAPPY / EXCITED / IN LOVE": MoodHappy,
		"calm / content":            MoodCalm,
	}
	for input, want := range cases {
		if got := NormalizeEmotion(input); got != want {
			t.Errorf("NormalizeEmotion(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeEmotionDefault(t *testing.T) {
	if got := NormalizeEmotion(""); got != MoodHappy {
		t.Errorf("NormalizeEmotion(\"\") = %q, want default %q", got, MoodHappy)
	}
	if got := NormalizeEmotion("xyz-unrecognized"); got != MoodHappy {
		t.Errorf("NormalizeEmotion(unrecognized) = %q, want default %q", got, MoodHappy)
	}
}

func TestNormalizeEmotionTieBreakOrder(t *testing.T) {
	// containment keys are checked front to back; "stress" sits before
	// "tired", so the stressed category wins
	if got := NormalizeEmotion("stressed and tired"); got != MoodStressed {
		t.Errorf("NormalizeEmotion(\"stressed and tired\") = %q, want %q", got, MoodStressed)
	}
	// "sad" is the very first key
	if got := NormalizeEmotion("feeling sad and tired tonight"); got != MoodSad {
		t.Errorf("got %q, want %q", got, MoodSad)
	}
}

func TestNormalizeEmotionContainment(t *testing.T) {
	cases := map[string]MoodCategory{
		"a bit anxious about tomorrow":      MoodAnxious,
		"totally frustrated with work":      MoodStressed,
		"utterly exhausted after school":    MoodTired,
		"quietly joyful this morning":       MoodHappy,
		"so overwhelming, overwhelmed even": MoodStressed,
	}
	for input, want := range cases {
		if got := NormalizeEmotion(input); got != want {
			t.Errorf("NormalizeEmotion(%q) = %q, want %q", input, got, want)
		}
	}
}
