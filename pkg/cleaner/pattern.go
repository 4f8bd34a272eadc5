package cleaner

import (
	"strings"
	"sync"
)

const (
	// minPatternLength is the shortest common substring treated as a
	// cross-page boilerplate pattern. Shorter matches are ordinary
	// prose overlap, not shared page chrome.
	minPatternLength = 250

	// maxPatterns caps how many patterns are remembered across pages.
	maxPatterns = 5

	// maxPasses caps pattern removal iterations per document.
	maxPasses = 5
)

// PatternCleaner removes large text blocks that repeat across pages of the
// same site, such as shared headers and footers. The first document seen
// seeds the pattern store; each later document has its longest common
// substrings with the stored patterns removed, and every removed block is
// itself remembered as a pattern.
//
// The cleaner is stateful across calls and safe for concurrent use.
type PatternCleaner struct {
	mu       sync.Mutex
	patterns []string
}

// NewPattern creates a cross-page pattern cleaner.
func NewPattern() *PatternCleaner {
	return &PatternCleaner{}
}

// Clean removes stored boilerplate patterns from text.
func (c *PatternCleaner) Clean(text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The first document establishes the reference patterns.
	if len(c.patterns) == 0 {
		c.patterns = append(c.patterns, text)
		return text, nil
	}

	cleaned := text
	for pass := 0; pass < maxPasses; pass++ {
		longest := ""
		for _, pattern := range c.patterns {
			common := longestCommonSubstring(pattern, cleaned)
			if len(common) > len(longest) {
				longest = common
			}
		}

		if len(longest) < minPatternLength {
			break
		}

		cleaned = strings.ReplaceAll(cleaned, longest, "")

		if len(c.patterns) < maxPatterns {
			c.patterns = append(c.patterns, longest)
		}
	}

	return strings.TrimSpace(cleaned), nil
}

// Name returns the cleaner type.
func (c *PatternCleaner) Name() string {
	return "pattern"
}

// longestCommonSubstring returns the longest substring present in both a
// and b, using the standard dynamic-programming table with two rows.
func longestCommonSubstring(a, b string) string {
	if a == "" || b == "" {
		return ""
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	bestLen := 0
	bestEnd := 0 // end index in a, exclusive

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > bestLen {
					bestLen = curr[j]
					bestEnd = i
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}

	return a[bestEnd-bestLen : bestEnd]
}
