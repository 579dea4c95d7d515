package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/jwebster45206/mobkc/pkg/host"
	"github.com/jwebster45206/mobkc/pkg/names"
	"github.com/jwebster45206/mobkc/pkg/overlay"
	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/jwebster45206/mobkc/pkg/tracker"
)

const helpText = `Commands:
• attack <id> <name>   you attack an NPC
• aggro <id> <name>    an NPC attacks you
• despawn <id> <name>  an NPC despawns
• kill <id> <name>     attack, then despawn
• menu <name> [level]  right-click an NPC
• pick <n>             choose menu entry n
• set <key> <value>    edit a plugin setting
• adjust <n>           add n to the kill count on the next tick
• tick                 run a game tick now
• counters             list persisted kill counts
• copy                 copy the readout to the clipboard
• help, quit`

// Non-NPC menu action, used for the filler "Walk here" row
const menuActionWalk host.MenuAction = 23

var errUsage = errors.New("usage")

// counterLister is implemented by stores that can enumerate a group
type counterLister interface {
	All(ctx context.Context, group string) (map[string]string, error)
}

// session turns typed commands into client events. It stands in for the
// game client and is independent of the terminal UI.
type session struct {
	ctx      context.Context
	tracker  *tracker.Tracker
	settings *settings.Settings
	local    *host.Actor
	menu     []host.MenuEntry
	now      func() time.Time
	copy     func(string) error
}

func newSession(ctx context.Context, tr *tracker.Tracker, s *settings.Settings) *session {
	return &session{
		ctx:      ctx,
		tracker:  tr,
		settings: s,
		local:    &host.Actor{ID: 0, Name: "You", Kind: host.ActorPlayer, Local: true},
		now:      time.Now,
		copy:     clipboard.WriteAll,
	}
}

// exec runs one command and returns the lines to show
func (s *session) exec(input string) ([]string, error) {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(input), "/"))
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help":
		return strings.Split(helpText, "\n"), nil

	case "attack", "aggro", "despawn", "kill":
		id, name, err := npcArgs(args)
		if err != nil {
			return nil, fmt.Errorf("%w: %s <id> <name>", err, cmd)
		}
		return s.combat(cmd, &host.Actor{ID: id, Name: name, Kind: host.ActorNPC}), nil

	case "menu":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: menu <name> [level]", errUsage)
		}
		return s.openMenu(args), nil

	case "pick":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: pick <n>", errUsage)
		}
		return s.pick(args[0])

	case "set":
		if len(args) < 1 {
			return nil, fmt.Errorf("%w: set <key> <value>", errUsage)
		}
		value := strings.Join(args[1:], " ")
		if err := s.settings.SetString(s.ctx, args[0], value); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s = %q", args[0], value)}, nil

	case "adjust":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: adjust <n>", errUsage)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: adjust <n>: %v", errUsage, err)
		}
		if err := s.settings.SetInt(s.ctx, settings.KeyManualAdjust, n); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Adjustment of %+d queued for the next tick", n)}, nil

	case "tick":
		s.tracker.Dispatch(s.ctx, host.Tick{}, nil)
		return []string{"Tick"}, nil

	case "counters":
		return s.counters()

	case "copy":
		d, ok := overlay.Render(s.tracker.Snapshot(), s.now(), overlay.OptionsFrom(s.ctx, s.settings))
		if !ok {
			return []string{"Nothing tracked"}, nil
		}
		if err := s.copy(d.Left); err != nil {
			return nil, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return []string{"Copied: " + d.Left}, nil

	default:
		return nil, fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func npcArgs(args []string) (int, string, error) {
	if len(args) < 2 {
		return 0, "", errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", errUsage
	}
	return id, strings.Join(args[1:], " "), nil
}

func (s *session) combat(cmd string, npc *host.Actor) []string {
	var out []string
	if cmd == "attack" || cmd == "kill" {
		s.tracker.Dispatch(s.ctx, host.InteractionStart{Source: s.local, Target: npc}, nil)
		out = append(out, fmt.Sprintf("You attack %s (#%d)", npc.Name, npc.ID))
	}
	if cmd == "aggro" {
		s.tracker.Dispatch(s.ctx, host.InteractionStart{Source: npc, Target: s.local}, nil)
		out = append(out, fmt.Sprintf("%s (#%d) attacks you", npc.Name, npc.ID))
	}
	if cmd == "despawn" || cmd == "kill" {
		before := s.tracker.CurrentCount()
		s.tracker.Dispatch(s.ctx, host.Despawn{NPC: npc, At: s.now()}, nil)
		line := fmt.Sprintf("%s (#%d) despawns", npc.Name, npc.ID)
		if s.tracker.CurrentCount() > before {
			line += ", counted"
		}
		out = append(out, line)
	}
	return out
}

func (s *session) openMenu(args []string) []string {
	level := 1
	if n, err := strconv.Atoi(args[len(args)-1]); err == nil && len(args) > 1 {
		level = n
		args = args[:len(args)-1]
	}
	target := fmt.Sprintf("<col=ffff00>%s<col=ff00>  (level-%d)", strings.Join(args, " "), level)

	s.menu = nil
	for _, e := range []host.MenuEntry{
		{Option: "Attack", Target: target, Action: host.MenuActionNPCSecondOption, Identifier: level},
		{Option: "Examine", Target: target, Action: host.MenuActionExamineNPC, Identifier: level},
		{Option: "Walk here", Action: menuActionWalk},
	} {
		s.menu = append(s.menu, e)
		s.menu = s.tracker.Dispatch(s.ctx, host.MenuEntryAdded{Entry: e}, s.menu)
	}

	out := []string{"Menu:"}
	for i, e := range s.menu {
		out = append(out, strings.TrimRight(fmt.Sprintf("  %d. %s %s", i+1, e.Option, names.RemoveTags(e.Target)), " "))
	}
	return out
}

func (s *session) pick(arg string) ([]string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.menu) {
		return nil, fmt.Errorf("%w: pick a number between 1 and %d", errUsage, len(s.menu))
	}
	e := s.menu[n-1]
	s.menu = nil

	s.tracker.Dispatch(s.ctx, host.MenuOptionClicked{Option: e.Option, Action: e.Action, Target: e.Target}, nil)
	return []string{strings.TrimSpace(fmt.Sprintf("You pick %s %s", e.Option, names.RemoveTags(e.Target)))}, nil
}

func (s *session) counters() ([]string, error) {
	lister, ok := s.settings.Store().(counterLister)
	if !ok {
		return []string{"This store cannot list counters"}, nil
	}
	all, err := lister.All(s.ctx, s.settings.Group())
	if err != nil {
		return nil, err
	}

	var keys []string
	for k := range all {
		if strings.HasPrefix(k, names.CounterKeyPrefix) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return []string{"No kill counts saved yet"}, nil
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s = %s", k, all[k]))
	}
	return out, nil
}
