// Package names normalizes NPC display names and derives the storage keys
// their kill counts are persisted under.
package names

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// CounterKeyPrefix namespaces persisted kill counters
const CounterKeyPrefix = "kc_"

var (
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// RemoveTags strips client markup such as <col=ffff00> or <img=2>
func RemoveTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Clean turns a raw menu target or NPC name into the name used for
// comparison and storage: tags removed, everything from the first '('
// dropped ("Bloodveld  (level-76)" -> "Bloodveld"), whitespace trimmed.
func Clean(raw string) string {
	s := RemoveTags(raw)
	if idx := strings.IndexByte(s, '('); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// CounterKey derives the persistence key for a cleaned name.
// Runs of characters outside [a-z0-9] collapse to a single '_' and
// edge underscores are dropped, so "GIANT   RAT!!" and "Giant Rat"
// share kc_giant_rat.
func CounterKey(name string) string {
	base := nonAlnumRun.ReplaceAllString(strings.ToLower(name), "_")
	return CounterKeyPrefix + strings.Trim(base, "_")
}

// Same reports whether two names identify the same tracking target
func Same(a, b string) bool {
	return fold(strings.TrimSpace(a)) == fold(strings.TrimSpace(b))
}

// Matches reports whether candidate counts as a kill of tracked.
// This is a case-insensitive substring test, so tracking "Goblin" also
// matches "Hobgoblin".
func Matches(tracked, candidate string) bool {
	if strings.TrimSpace(tracked) == "" {
		return false
	}
	return strings.Contains(fold(candidate), fold(tracked))
}

// Casers keep state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
