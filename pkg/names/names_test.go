package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "plain", raw: "Goblin", expected: "Goblin"},
		{name: "level suffix", raw: "Bloodveld (level-113)", expected: "Bloodveld"},
		{name: "colour tags and level", raw: "<col=ffff00>Bloodveld<col=ff00>  (level-76)", expected: "Bloodveld"},
		{name: "surrounding whitespace", raw: "   Giant Rat \t", expected: "Giant Rat"},
		{name: "only tags", raw: "<col=ff0000></col>", expected: ""},
		{name: "empty", raw: "", expected: ""},
		{name: "paren at start", raw: "(level-2) Man", expected: ""},
		{name: "unterminated tag kept", raw: "Imp <col", expected: "Imp <col"},
		{name: "non-breaking space trimmed", raw: "Cow\u00a0", expected: "Cow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.raw))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Goblin",
		"<col=ffff00>Bloodveld<col=ff00>  (level-76)",
		"<<b>a>",
		"  Kalphite Queen (level-333) (phase 2) ",
		"Imp <col",
		"",
		"   ",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCounterKey(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "Goblin", expected: "kc_goblin"},
		{name: "Giant Rat", expected: "kc_giant_rat"},
		{name: "giant rat", expected: "kc_giant_rat"},
		{name: "GIANT   RAT!!", expected: "kc_giant_rat"},
		{name: "K'ril Tsutsaroth", expected: "kc_k_ril_tsutsaroth"},
		{name: "TzTok-Jad", expected: "kc_tztok_jad"},
		{name: "Guard 2", expected: "kc_guard_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CounterKey(tt.name))
		})
	}
}

func TestSame(t *testing.T) {
	assert.True(t, Same("Goblin", "goblin"))
	assert.True(t, Same(" Goblin ", "GOBLIN"))
	assert.False(t, Same("Goblin", "Hobgoblin"))
	assert.False(t, Same("Goblin", ""))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		tracked   string
		candidate string
		expected  bool
	}{
		{tracked: "Goblin", candidate: "Goblin", expected: true},
		{tracked: "goblin", candidate: "GOBLIN", expected: true},
		{tracked: "Goblin", candidate: "Hobgoblin", expected: true},
		{tracked: "Hobgoblin", candidate: "Goblin", expected: false},
		{tracked: "Giant Rat", candidate: "Rat", expected: false},
		{tracked: "", candidate: "Goblin", expected: false},
		{tracked: "  ", candidate: "Goblin", expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Matches(tt.tracked, tt.candidate), "%q in %q", tt.tracked, tt.candidate)
	}
}
