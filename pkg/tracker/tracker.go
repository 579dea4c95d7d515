// Package tracker keeps track of which NPC the player is counting kills for,
// how many it has killed since, and which live NPCs are engaged with the
// player. Counters are persisted per name through settings.Settings.
//
// Handlers are expected to be called one at a time by the game client.
// Read accessors may be called concurrently with them, e.g. from a render
// loop.
package tracker

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jwebster45206/mobkc/pkg/names"
	"github.com/jwebster45206/mobkc/pkg/settings"
)

// Tracker is the tracking state machine. It is Idle when no name is set
// and Tracking(name) otherwise.
type Tracker struct {
	mu        sync.RWMutex
	settings  *settings.Settings
	logger    *slog.Logger
	notifiers []Notifier
	now       func() time.Time

	currentName     string
	currentCount    int
	lastIncrementAt time.Time
	engaged         map[int]struct{}

	pending []Change
}

// Option configures a Tracker
type Option func(*Tracker)

// WithNotifiers registers receivers for committed changes
func WithNotifiers(n ...Notifier) Option {
	return func(t *Tracker) {
		t.notifiers = append(t.notifiers, n...)
	}
}

// WithClock replaces time.Now for events that carry no timestamp
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// New creates an Idle tracker
func New(s *settings.Settings, logger *slog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		settings: s,
		logger:   logger,
		now:      time.Now,
		engaged:  make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize starts a session: the engagement set is emptied and the
// tracked name, if one is configured, is loaded with its persisted count.
func (t *Tracker) Initialize(ctx context.Context) {
	t.mutate(ctx, func() {
		t.engaged = make(map[int]struct{})
		t.reset()

		if name := t.settings.TrackedName(ctx); name != "" {
			t.switchTarget(ctx, name)
		}
		t.logger.Info("Tracker initialized", "tracking", t.currentName, "count", t.currentCount)
	})
}

// Shutdown flushes the current counter and clears all state
func (t *Tracker) Shutdown(ctx context.Context) {
	t.mutate(ctx, func() {
		t.flush(ctx)
		t.logger.Info("Tracker shut down", "tracking", t.currentName, "count", t.currentCount)
		t.reset()
		t.engaged = make(map[int]struct{})
	})
}

// SwitchTarget starts tracking rawName. Blank names and the name already
// being tracked (case-insensitive) are ignored.
func (t *Tracker) SwitchTarget(ctx context.Context, rawName string) {
	t.mutate(ctx, func() {
		t.switchTarget(ctx, rawName)
	})
}

// RecordInteractionStart marks an NPC as engaged with the player. When the
// player started the interaction and automatic tracking is on, tracking
// moves to that NPC.
func (t *Tracker) RecordInteractionStart(ctx context.Context, observerIsSource bool, id int, rawName string) {
	t.mutate(ctx, func() {
		t.engaged[id] = struct{}{}

		if !observerIsSource || !t.settings.AutomaticTracking(ctx) {
			return
		}
		if cleaned := names.Clean(rawName); cleaned != "" {
			t.switchTarget(ctx, cleaned)
		}
	})
}

// RecordDespawn counts a kill when an engaged NPC whose name contains the
// tracked name despawns. An empty rawName means the client had no name.
func (t *Tracker) RecordDespawn(ctx context.Context, id int, rawName string, now time.Time) {
	t.mutate(ctx, func() {
		if !t.tracking() {
			return
		}
		if _, ok := t.engaged[id]; !ok {
			return
		}
		if rawName == "" {
			return
		}

		// An NPC only ever gets one chance to count.
		delete(t.engaged, id)

		cleaned := names.Clean(rawName)
		if !names.Matches(t.currentName, cleaned) {
			t.logger.Debug("Engaged NPC despawned without match", "id", id, "npc", cleaned, "tracking", t.currentName)
			return
		}

		t.currentCount++
		t.lastIncrementAt = now
		t.logger.Debug("Kill recorded", "id", id, "npc", cleaned, "tracking", t.currentName, "count", t.currentCount)
		t.record(Change{
			Kind:  ChangeKillRecorded,
			Name:  t.currentName,
			Count: t.currentCount,
			At:    now,
		})
	})
}

// ManualAdjust adds delta to the current count, clamped at 0, persists it
// immediately and resets the manual-adjust setting so it applies once.
func (t *Tracker) ManualAdjust(ctx context.Context, delta int) {
	t.mutate(ctx, func() {
		t.manualAdjust(ctx, delta)
	})
}

// OnTick reconciles the tracker with the tracked-name setting, which the
// user may have edited, then applies any pending manual adjustment.
func (t *Tracker) OnTick(ctx context.Context) {
	t.mutate(ctx, func() {
		cfgName := t.settings.TrackedName(ctx)

		switch {
		case cfgName == "" && t.tracking():
			t.clear(ctx)
		case cfgName != "" && (!t.tracking() || !names.Same(cfgName, t.currentName)):
			t.switchTarget(ctx, cfgName)
		}

		if delta := t.settings.ManualAdjust(ctx); delta != 0 {
			t.manualAdjust(ctx, delta)
		}
	})
}

func (t *Tracker) switchTarget(ctx context.Context, rawName string) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return
	}
	if t.tracking() && names.Same(name, t.currentName) {
		return
	}

	previous := t.currentName
	t.flush(ctx)

	t.currentName = name
	t.currentCount = t.settings.Counter(ctx, names.CounterKey(name))
	t.lastIncrementAt = time.Time{}

	if err := t.settings.SetTrackedName(ctx, name); err != nil {
		t.logger.Error("Failed to write tracked name", "name", name, "error", err)
	}

	t.logger.Info("Tracking switched", "from", previous, "to", name, "count", t.currentCount)
	t.record(Change{
		Kind:     ChangeTargetSwitched,
		Name:     name,
		Previous: previous,
		Count:    t.currentCount,
		At:       t.now(),
	})
}

func (t *Tracker) manualAdjust(ctx context.Context, delta int) {
	if delta == 0 || !t.tracking() {
		return
	}

	t.currentCount += delta
	if t.currentCount < 0 {
		t.currentCount = 0
	}
	t.flush(ctx)

	if err := t.settings.ResetManualAdjust(ctx); err != nil {
		t.logger.Error("Failed to reset manual adjustment", "error", err)
	}

	t.logger.Info("Kill count adjusted", "tracking", t.currentName, "delta", delta, "count", t.currentCount)
	t.record(Change{
		Kind:  ChangeCountAdjusted,
		Name:  t.currentName,
		Count: t.currentCount,
		Delta: delta,
		At:    t.now(),
	})
}

// clear flushes and returns to Idle
func (t *Tracker) clear(ctx context.Context) {
	previous, count := t.currentName, t.currentCount
	t.flush(ctx)
	t.reset()

	t.logger.Info("Tracking cleared", "previous", previous, "count", count)
	t.record(Change{
		Kind:     ChangeTargetCleared,
		Previous: previous,
		Count:    count,
		At:       t.now(),
	})
}

func (t *Tracker) flush(ctx context.Context) {
	if !t.tracking() {
		return
	}
	key := names.CounterKey(t.currentName)
	if err := t.settings.SetCounter(ctx, key, t.currentCount); err != nil {
		t.logger.Error("Failed to persist kill count", "key", key, "count", t.currentCount, "error", err)
		return
	}
	t.logger.Debug("Kill count persisted", "key", key, "count", t.currentCount)
}

func (t *Tracker) reset() {
	t.currentName = ""
	t.currentCount = 0
	t.lastIncrementAt = time.Time{}
}

func (t *Tracker) tracking() bool {
	return t.currentName != ""
}

func (t *Tracker) record(c Change) {
	t.pending = append(t.pending, c)
}

// mutate runs fn under the write lock and delivers the changes it recorded
// once the lock is released, so notifiers may read the tracker.
func (t *Tracker) mutate(ctx context.Context, fn func()) {
	t.mu.Lock()
	fn()
	changes := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, c := range changes {
		for _, n := range t.notifiers {
			if err := n.Notify(ctx, c); err != nil {
				t.logger.Error("Failed to deliver tracker change", "kind", c.Kind, "name", c.Name, "error", err)
			}
		}
	}
}
