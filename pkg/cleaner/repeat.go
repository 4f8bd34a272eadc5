package cleaner

import (
	"strings"
)

// DefaultRepeatThreshold is the occurrence count at which a line is
// considered boilerplate.
const DefaultRepeatThreshold = 3

// RepeatCleaner removes lines that repeat verbatim within a single
// document. A line occurring at least Threshold times is treated as
// boilerplate (navigation menus, repeated footers) and dropped; lines
// appearing fewer times are left untouched, so legitimate short
// repetitions survive. Order of the remaining lines is preserved.
type RepeatCleaner struct {
	threshold int
	keepFirst bool
}

// RepeatOption configures a RepeatCleaner.
type RepeatOption func(*RepeatCleaner)

// WithKeepFirst keeps the first occurrence of a repeated line instead of
// removing every copy.
func WithKeepFirst() RepeatOption {
	return func(c *RepeatCleaner) {
		c.keepFirst = true
	}
}

// NewRepeat creates a repeat cleaner. A threshold below 2 falls back to
// the default.
func NewRepeat(threshold int, opts ...RepeatOption) *RepeatCleaner {
	if threshold < 2 {
		threshold = DefaultRepeatThreshold
	}
	c := &RepeatCleaner{threshold: threshold}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean removes repeated lines. Cleaning is idempotent: every surviving
// line occurs fewer than threshold times, so a second pass is a no-op.
func (c *RepeatCleaner) Clean(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	lines := strings.Split(text, "\n")

	counts := make(map[string]int, len(lines))
	for _, line := range lines {
		counts[line]++
	}

	kept := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	for _, line := range lines {
		// Blank lines are spacing, not boilerplate.
		if line != "" && counts[line] >= c.threshold {
			if !c.keepFirst || seen[line] {
				continue
			}
			seen[line] = true
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), nil
}

// Name returns the cleaner type.
func (c *RepeatCleaner) Name() string {
	return "repeat"
}
