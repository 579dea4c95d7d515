package tracker

import (
	"context"

	"github.com/jwebster45206/mobkc/pkg/host"
	"github.com/jwebster45206/mobkc/pkg/names"
)

// MenuOptionShowKC is the label of the entry that picks a tracking target
const MenuOptionShowKC = "Show KC"

// AugmentMenu appends a "Show KC" entry for candidate's target when
// candidate is an NPC action and entries has no "Show KC" row for the same
// target yet. It reports whether an entry was added.
func AugmentMenu(entries []host.MenuEntry, candidate host.MenuEntry) ([]host.MenuEntry, bool) {
	if !candidate.Action.IsNPCAction() {
		return entries, false
	}

	for _, e := range entries {
		if e.Option == MenuOptionShowKC && e.Target == candidate.Target {
			return entries, false
		}
	}

	return append(entries, host.MenuEntry{
		Option:     MenuOptionShowKC,
		Target:     candidate.Target,
		Action:     host.MenuActionCustom,
		Identifier: candidate.Identifier,
		Param0:     candidate.Param0,
		Param1:     candidate.Param1,
	}), true
}

// HandleMenuOptionClicked switches tracking when the user picks "Show KC"
func (t *Tracker) HandleMenuOptionClicked(ctx context.Context, click host.MenuOptionClicked) {
	if click.Option != MenuOptionShowKC || click.Action != host.MenuActionCustom {
		return
	}

	cleaned := names.Clean(click.Target)
	if cleaned == "" {
		return
	}
	t.SwitchTarget(ctx, cleaned)
}
