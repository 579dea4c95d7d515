package settings

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func TestSettings_Defaults(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryStore(), "", testLogger())

	assert.Equal(t, DefaultGroup, s.Group())
	assert.Equal(t, "", s.TrackedName(ctx))
	assert.True(t, s.AutomaticTracking(ctx))
	assert.True(t, s.ShowName(ctx))
	assert.True(t, s.ShowPlusOne(ctx))
	assert.Equal(t, White, s.TextColor(ctx))
	assert.Equal(t, 800*time.Millisecond, s.AnimationDuration(ctx))
	assert.Equal(t, 0, s.ManualAdjust(ctx))
	assert.Equal(t, 0, s.Counter(ctx, "kc_goblin"))
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, "group", testLogger())

	require.NoError(t, s.SetTrackedName(ctx, "  Goblin "))
	require.NoError(t, s.SetBool(ctx, KeyAutomaticTracking, false))
	require.NoError(t, s.SetInt(ctx, KeyAnimationDuration, 1200))
	require.NoError(t, s.SetColor(ctx, KeyTextColor, Color{R: 255, G: 0, B: 0, A: 255}))
	require.NoError(t, s.SetCounter(ctx, "kc_goblin", 12))

	assert.Equal(t, "Goblin", s.TrackedName(ctx))
	assert.False(t, s.AutomaticTracking(ctx))
	assert.Equal(t, 1200*time.Millisecond, s.AnimationDuration(ctx))
	assert.Equal(t, Color{R: 255, A: 255}, s.TextColor(ctx))
	assert.Equal(t, 12, s.Counter(ctx, "kc_goblin"))

	v, ok, err := store.Get(ctx, "group", KeyTextColor)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "#ff0000", v)
}

func TestSettings_InvalidValuesFallBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, "", testLogger())

	require.NoError(t, store.Set(ctx, DefaultGroup, KeyShowName, "maybe"))
	require.NoError(t, store.Set(ctx, DefaultGroup, KeyAnimationDuration, "fast"))
	require.NoError(t, store.Set(ctx, DefaultGroup, KeyTextColor, "blue"))
	require.NoError(t, store.Set(ctx, DefaultGroup, "kc_imp", "-4"))

	assert.True(t, s.ShowName(ctx))
	assert.Equal(t, 800*time.Millisecond, s.AnimationDuration(ctx))
	assert.Equal(t, White, s.TextColor(ctx))
	assert.Equal(t, 0, s.Counter(ctx, "kc_imp"))
}

func TestSettings_ReadErrorYieldsDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, "", testLogger())
	require.NoError(t, s.SetCounter(ctx, "kc_goblin", 3))

	store.SetGetError(ErrStoreUnavailable)
	assert.Equal(t, 0, s.Counter(ctx, "kc_goblin"))
	assert.True(t, s.AutomaticTracking(ctx))

	store.SetGetError(nil)
	assert.Equal(t, 3, s.Counter(ctx, "kc_goblin"))
}

func TestSettings_ResetManualAdjust(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(store, "", testLogger())

	require.NoError(t, s.SetInt(ctx, KeyManualAdjust, 5))
	assert.Equal(t, 5, s.ManualAdjust(ctx))
	require.NoError(t, s.ResetManualAdjust(ctx))
	assert.Equal(t, 0, s.ManualAdjust(ctx))
	assert.Equal(t, []string{"5", "0"}, store.Writes(DefaultGroup, KeyManualAdjust))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ffffff", want: White},
		{in: "#00ff00", want: Green},
		{in: "#00ff0080", want: Color{G: 255, A: 0x80}},
		{in: " #102030 ", want: Color{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{in: "ffffff", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "#ffffffzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#ffffff", White.Hex())
	assert.Equal(t, "#00ff0080", Green.WithAlpha(0x80).Hex())

	c, err := ParseColor(Color{R: 1, G: 2, B: 3, A: 4}.Hex())
	require.NoError(t, err)
	assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 4}, c)
}
