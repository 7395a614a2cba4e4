package utils

import "strings"

// FoodKeySlug builds the stable key for an avoided-food record:
// lowercased, trimmed, runs of non-alphanumerics collapsed to single
// hyphens. "Ice  Cream!" and "ice cream" share one key.
func FoodKeySlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
