// Package overlay turns tracker state into the one-line kill count readout.
// Render is pure; View paints a Display for a terminal.
package overlay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/jwebster45206/mobkc/pkg/tracker"
)

const (
	// ShortLabel replaces the NPC name when names are hidden
	ShortLabel = "KC"
	PlusOne    = "+1"
)

// Options are the display settings
type Options struct {
	ShowName          bool
	TextColor         settings.Color
	ShowPlusOne       bool
	AnimationDuration time.Duration
}

// DefaultOptions mirrors the declared setting defaults
func DefaultOptions() Options {
	return Options{
		ShowName:          settings.DefaultShowName,
		TextColor:         settings.DefaultTextColor,
		ShowPlusOne:       settings.DefaultShowPlusOne,
		AnimationDuration: settings.DefaultAnimationDurationMs * time.Millisecond,
	}
}

// OptionsFrom reads the current display settings
func OptionsFrom(ctx context.Context, s *settings.Settings) Options {
	return Options{
		ShowName:          s.ShowName(ctx),
		TextColor:         s.TextColor(ctx),
		ShowPlusOne:       s.ShowPlusOne(ctx),
		AnimationDuration: s.AnimationDuration(ctx),
	}
}

// Display is the two-cell readout. Right is empty when no flash is showing.
type Display struct {
	Left       string
	LeftColor  settings.Color
	Right      string
	RightColor settings.Color
}

// Render builds the readout for snap at time now. It reports false when
// there is nothing to show.
func Render(snap tracker.Snapshot, now time.Time, opts Options) (Display, bool) {
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		return Display{}, false
	}

	label := ShortLabel
	if opts.ShowName {
		label = name
	}

	d := Display{
		Left:      fmt.Sprintf("%s - Total Slain: %d", label, snap.Count),
		LeftColor: opts.TextColor,
	}

	if !opts.ShowPlusOne || !snap.Incremented() {
		return d, true
	}
	if alpha, ok := FlashAlpha(snap.LastIncrementAt, now, opts.AnimationDuration); ok {
		d.Right = PlusOne
		d.RightColor = settings.Green.WithAlpha(alpha)
	}
	return d, true
}

// FlashAlpha is the opacity of the "+1" flash: 255 at the moment of the
// kill, falling linearly to 0 at last+duration. ok is false once the
// flash is over.
func FlashAlpha(last, now time.Time, duration time.Duration) (alpha uint8, ok bool) {
	if duration <= 0 {
		return 0, false
	}

	elapsed := now.Sub(last)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= duration {
		return 0, false
	}

	progress := float64(elapsed) / float64(duration)
	a := int(255 * (1.0 - progress))
	a = max(0, min(255, a))
	return uint8(a), true
}
