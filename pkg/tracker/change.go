package tracker

import (
	"context"
	"time"
)

// ChangeKind identifies a committed state change
type ChangeKind string

const (
	ChangeTargetSwitched ChangeKind = "target.switched"
	ChangeTargetCleared  ChangeKind = "target.cleared"
	ChangeKillRecorded   ChangeKind = "kill.recorded"
	ChangeCountAdjusted  ChangeKind = "count.adjusted"
)

// Change describes one committed mutation of the tracking state.
// Previous is only set for switches and clears; Delta only for adjustments.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Name     string     `json:"name,omitempty"`
	Previous string     `json:"previous,omitempty"`
	Count    int        `json:"count"`
	Delta    int        `json:"delta,omitempty"`
	At       time.Time  `json:"at"`
}

// Notifier receives changes after they are committed. Errors are logged by
// the tracker and never affect its state.
type Notifier interface {
	Notify(ctx context.Context, c Change) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, c Change) error

func (f NotifierFunc) Notify(ctx context.Context, c Change) error {
	return f(ctx, c)
}
