package tracker

import "time"

// Snapshot is a point-in-time copy of the tracking state for rendering
type Snapshot struct {
	Name            string
	Count           int
	LastIncrementAt time.Time
}

// Tracking reports whether a name is being tracked
func (s Snapshot) Tracking() bool {
	return s.Name != ""
}

// Incremented reports whether a kill has been counted since the last switch
func (s Snapshot) Incremented() bool {
	return !s.LastIncrementAt.IsZero()
}

// Snapshot copies the committed state under the read lock
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Name:            t.currentName,
		Count:           t.currentCount,
		LastIncrementAt: t.lastIncrementAt,
	}
}

func (t *Tracker) IsTracking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tracking()
}

func (t *Tracker) CurrentDisplayName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentName
}

func (t *Tracker) CurrentCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentCount
}

// LastIncrementAt returns the time of the most recent kill, if any
func (t *Tracker) LastIncrementAt() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastIncrementAt, !t.lastIncrementAt.IsZero()
}

// Engaged reports whether the NPC instance is in the engagement set
func (t *Tracker) Engaged(id int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.engaged[id]
	return ok
}

func (t *Tracker) EngagedCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.engaged)
}
