package crawler

import "strings"

// Excluded reports whether rawURL contains any of the exclusion
// substrings. Matching is literal and case-sensitive; an empty exclusion
// list never matches. Empty entries are ignored so a stray comma in the
// configuration cannot exclude everything.
func Excluded(rawURL string, exclude []string) bool {
	for _, sub := range exclude {
		if sub != "" && strings.Contains(rawURL, sub) {
			return true
		}
	}
	return false
}
