package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jwebster45206/mobkc/internal/config"
	"github.com/jwebster45206/mobkc/internal/logger"
	"github.com/jwebster45206/mobkc/internal/storage"
	"github.com/jwebster45206/mobkc/pkg/host"
	"github.com/jwebster45206/mobkc/pkg/names"
	"github.com/jwebster45206/mobkc/pkg/overlay"
	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/jwebster45206/mobkc/pkg/tracker"
)

// Lines longer than this are rejected rather than silently split
const maxLineBytes = 1 << 20

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <events.jsonl | ->\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.SetupTo(os.Stderr, cfg)

	in := io.Reader(os.Stdin)
	if name := os.Args[1]; name != "-" {
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", name, err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		in = f
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open settings store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	r := NewReplayer(settings.New(store, cfg.ConfigGroup, log), log)
	replayErr := r.Replay(ctx, in)
	r.Report(ctx, os.Stdout)

	if replayErr != nil {
		fmt.Fprintf(os.Stderr, "Replay failed: %v\n", replayErr)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (settings.Store, func(), error) {
	if cfg.RedisURL == "" {
		return settings.NewMemoryStore(), func() {}, nil
	}

	rs, err := storage.NewRedisStore(cfg.RedisURL, log)
	if err != nil {
		return nil, nil, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rs.WaitForConnection(waitCtx, 5, time.Second); err != nil {
		_ = rs.Close()
		return nil, nil, err
	}
	return rs, func() { _ = rs.Close() }, nil
}

// Replayer feeds a JSON-lines event log through a fresh tracker
type Replayer struct {
	settings *settings.Settings
	tracker  *tracker.Tracker
	logger   *slog.Logger

	menu    []host.MenuEntry
	clock   time.Time
	events  int
	kills   int
	errors  []string
	stopped bool
}

func NewReplayer(s *settings.Settings, log *slog.Logger) *Replayer {
	r := &Replayer{settings: s, logger: log}
	r.tracker = tracker.New(s, log,
		tracker.WithClock(r.now),
		tracker.WithNotifiers(tracker.NotifierFunc(r.observe)))
	return r
}

// now is the time of the latest timestamped event, so a log replays the
// same way every time
func (r *Replayer) now() time.Time {
	return r.clock
}

func (r *Replayer) observe(ctx context.Context, c tracker.Change) error {
	if c.Kind == tracker.ChangeKillRecorded {
		r.kills++
	}
	return nil
}

// Replay dispatches every event in in, in order. Lines that do not decode
// are reported and skipped. The tracker is shut down at the end so the
// final count is persisted.
func (r *Replayer) Replay(ctx context.Context, in io.Reader) error {
	r.tracker.Initialize(ctx)
	defer func() {
		r.tracker.Shutdown(ctx)
		r.stopped = true
	}()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		ev, err := host.Decode([]byte(raw))
		if err != nil {
			r.errors = append(r.errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		r.dispatch(ctx, ev)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	if len(r.errors) > 0 {
		return fmt.Errorf("%d malformed event(s):\n%s", len(r.errors), strings.Join(r.errors, "\n"))
	}
	return nil
}

func (r *Replayer) dispatch(ctx context.Context, ev host.Event) {
	r.events++

	switch e := ev.(type) {
	case host.Despawn:
		if !e.At.IsZero() {
			r.clock = e.At
		}
	case host.MenuEntryAdded:
		// The client appends each entry before asking plugins about it
		r.menu = append(r.menu, e.Entry)
	}

	r.menu = r.tracker.Dispatch(ctx, ev, r.menu)

	if _, ok := ev.(host.MenuOptionClicked); ok {
		r.menu = nil
	}
}

// Report prints the final tracker state and the persisted counters
func (r *Replayer) Report(ctx context.Context, w io.Writer) {
	fmt.Fprintf(w, "Events: %d\n", r.events)
	fmt.Fprintf(w, "Kills recorded: %d\n", r.kills)

	name := r.settings.TrackedName(ctx)
	if name == "" {
		fmt.Fprintln(w, "Tracking: nothing")
	} else {
		snap := tracker.Snapshot{Name: name, Count: r.settings.Counter(ctx, names.CounterKey(name))}
		if !r.stopped {
			snap = r.tracker.Snapshot()
		}
		if d, ok := overlay.Render(snap, r.clock, overlay.OptionsFrom(ctx, r.settings)); ok {
			fmt.Fprintf(w, "Tracking: %s\n", d.Left)
		}
	}

	lister, ok := r.settings.Store().(interface {
		All(ctx context.Context, group string) (map[string]string, error)
	})
	if !ok {
		return
	}
	all, err := lister.All(ctx, r.settings.Group())
	if err != nil {
		r.logger.Error("Failed to list counters", "error", err)
		return
	}

	var keys []string
	for k := range all {
		if strings.HasPrefix(k, names.CounterKeyPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s = %s\n", k, all[k])
	}
}
