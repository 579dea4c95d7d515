package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jwebster45206/mobkc/pkg/names"
	"github.com/jwebster45206/mobkc/pkg/settings"
	"github.com/jwebster45206/mobkc/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*session, *settings.MemoryStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store := settings.NewMemoryStore()
	s := settings.New(store, settings.DefaultGroup, logger)
	tr := tracker.New(s, logger)

	ctx := context.Background()
	tr.Initialize(ctx)

	sess := newSession(ctx, tr, s)
	sess.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	sess.copy = func(string) error { return nil }
	return sess, store
}

func TestSession_MenuAndPick(t *testing.T) {
	sess, _ := newTestSession(t)

	out, err := sess.exec("menu Goblin 2")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Menu:",
		"  1. Attack Goblin  (level-2)",
		"  2. Show KC Goblin  (level-2)",
		"  3. Examine Goblin  (level-2)",
		"  4. Walk here",
	}, out)

	_, err = sess.exec("pick 2")
	require.NoError(t, err)
	assert.Equal(t, "Goblin", sess.tracker.CurrentDisplayName())
	assert.Empty(t, sess.menu, "menu closes after a pick")

	_, err = sess.exec("pick 1")
	assert.ErrorIs(t, err, errUsage)
}

func TestSession_KillCounts(t *testing.T) {
	sess, store := newTestSession(t)

	out, err := sess.exec("kill 7 Goblin")
	require.NoError(t, err)
	assert.Equal(t, []string{"You attack Goblin (#7)", "Goblin (#7) despawns, counted"}, out)
	assert.Equal(t, 1, sess.tracker.CurrentCount())

	out, err = sess.exec("despawn 7 Goblin")
	require.NoError(t, err)
	assert.Equal(t, []string{"Goblin (#7) despawns"}, out, "counted once per instance")

	_, err = sess.exec("aggro 8 Goblin")
	require.NoError(t, err)
	_, err = sess.exec("despawn 8 Goblin")
	require.NoError(t, err)
	assert.Equal(t, 2, sess.tracker.CurrentCount())

	// Switching target flushes the old counter
	_, err = sess.exec("attack 9 Cow")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, store.Writes(settings.DefaultGroup, names.CounterKey("Goblin")))

	out, err = sess.exec("counters")
	require.NoError(t, err)
	assert.Equal(t, []string{"kc_goblin = 2"}, out, "counters are written on flush, not on load")
}

func TestSession_AdjustAppliesOnTick(t *testing.T) {
	sess, _ := newTestSession(t)
	_, err := sess.exec("attack 1 Zulrah")
	require.NoError(t, err)

	_, err = sess.exec("adjust 5")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.tracker.CurrentCount())

	_, err = sess.exec("tick")
	require.NoError(t, err)
	assert.Equal(t, 5, sess.tracker.CurrentCount())
	assert.Equal(t, 0, sess.settings.ManualAdjust(sess.ctx))

	_, err = sess.exec("adjust -50")
	require.NoError(t, err)
	_, err = sess.exec("tick")
	require.NoError(t, err)
	assert.Equal(t, 0, sess.tracker.CurrentCount())
}

func TestSession_SetTrackedName(t *testing.T) {
	sess, _ := newTestSession(t)

	out, err := sess.exec("set trackedNpcName Bloodveld")
	require.NoError(t, err)
	assert.Equal(t, []string{`trackedNpcName = "Bloodveld"`}, out)

	_, err = sess.exec("tick")
	require.NoError(t, err)
	assert.Equal(t, "Bloodveld", sess.tracker.CurrentDisplayName())
}

func TestSession_Copy(t *testing.T) {
	sess, _ := newTestSession(t)

	out, err := sess.exec("copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nothing tracked"}, out)

	var copied string
	sess.copy = func(s string) error {
		copied = s
		return nil
	}
	_, err = sess.exec("kill 3 Goblin")
	require.NoError(t, err)
	out, err = sess.exec("copy")
	require.NoError(t, err)
	assert.Equal(t, "Goblin - Total Slain: 1", copied)
	assert.Equal(t, []string{"Copied: Goblin - Total Slain: 1"}, out)

	sess.copy = func(string) error { return errors.New("no display") }
	_, err = sess.exec("copy")
	assert.Error(t, err)
}

func TestSession_Errors(t *testing.T) {
	sess, _ := newTestSession(t)

	tests := []struct {
		input string
		usage bool
	}{
		{input: "kill Goblin", usage: true},
		{input: "kill x Goblin", usage: true},
		{input: "menu", usage: true},
		{input: "pick", usage: true},
		{input: "adjust lots", usage: true},
		{input: "set", usage: true},
		{input: "dance", usage: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := sess.exec(tt.input)
			require.Error(t, err)
			if tt.usage {
				assert.ErrorIs(t, err, errUsage)
			}
		})
	}

	out, err := sess.exec("   ")
	assert.NoError(t, err)
	assert.Nil(t, out)
}
