package tracker

import (
	"context"

	"github.com/jwebster45206/mobkc/pkg/host"
)

// Dispatch routes a client event to its handler. menu is the list of
// entries built so far in the current menu pass; the returned slice is the
// same list, extended when a "Show KC" entry was added.
func (t *Tracker) Dispatch(ctx context.Context, ev host.Event, menu []host.MenuEntry) []host.MenuEntry {
	if ev == nil {
		return menu
	}

	switch e := ev.(type) {
	case host.Tick:
		t.OnTick(ctx)

	case host.InteractionStart:
		t.handleInteraction(ctx, e)

	case host.Despawn:
		if e.NPC == nil {
			return menu
		}
		at := e.At
		if at.IsZero() {
			at = t.now()
		}
		t.RecordDespawn(ctx, e.NPC.ID, e.NPC.Name, at)

	case host.MenuEntryAdded:
		menu, _ = AugmentMenu(menu, e.Entry)

	case host.MenuOptionClicked:
		t.HandleMenuOptionClicked(ctx, e)

	default:
		t.logger.Warn("Unhandled event", "type", ev.Type())
	}
	return menu
}

// Only interactions between the local player and an NPC matter. Events
// without a local player on either side are dropped.
func (t *Tracker) handleInteraction(ctx context.Context, e host.InteractionStart) {
	switch {
	case e.Source.IsLocal() && e.Target.IsNPC():
		t.RecordInteractionStart(ctx, true, e.Target.ID, e.Target.Name)
	case e.Source.IsNPC() && e.Target.IsLocal():
		t.RecordInteractionStart(ctx, false, e.Source.ID, e.Source.Name)
	}
}
