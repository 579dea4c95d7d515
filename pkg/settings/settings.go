// Package settings gives typed access to the plugin configuration held in a
// namespaced key/value Store, with the declared default for every field.
package settings

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// DefaultGroup is the namespace all plugin keys live under
const DefaultGroup = "mobkcoverlay"

// Configuration keys
const (
	KeyTrackedName       = "trackedNpcName"
	KeyAutomaticTracking = "automaticTracking"
	KeyShowName          = "showNpcName"
	KeyTextColor         = "textColor"
	KeyShowPlusOne       = "showPlusOne"
	KeyAnimationDuration = "animationDuration"
	KeyManualAdjust      = "manualAddKc"
)

// Declared defaults
const (
	DefaultAutomaticTracking   = true
	DefaultShowName            = true
	DefaultShowPlusOne         = true
	DefaultAnimationDurationMs = 800
)

var DefaultTextColor = White

// Settings reads and writes typed fields. Reads never fail: an absent or
// unreadable value yields the default, and read errors are logged.
type Settings struct {
	store  Store
	group  string
	logger *slog.Logger
}

// New binds a Store to a namespace. An empty group uses DefaultGroup.
func New(store Store, group string, logger *slog.Logger) *Settings {
	if group == "" {
		group = DefaultGroup
	}
	return &Settings{
		store:  store,
		group:  group,
		logger: logger,
	}
}

// Group returns the namespace
func (s *Settings) Group() string {
	return s.group
}

// Store returns the underlying store
func (s *Settings) Store() Store {
	return s.store
}

func (s *Settings) TrackedName(ctx context.Context) string {
	return strings.TrimSpace(s.String(ctx, KeyTrackedName, ""))
}

func (s *Settings) SetTrackedName(ctx context.Context, name string) error {
	return s.SetString(ctx, KeyTrackedName, name)
}

func (s *Settings) AutomaticTracking(ctx context.Context) bool {
	return s.Bool(ctx, KeyAutomaticTracking, DefaultAutomaticTracking)
}

func (s *Settings) ShowName(ctx context.Context) bool {
	return s.Bool(ctx, KeyShowName, DefaultShowName)
}

func (s *Settings) ShowPlusOne(ctx context.Context) bool {
	return s.Bool(ctx, KeyShowPlusOne, DefaultShowPlusOne)
}

func (s *Settings) TextColor(ctx context.Context) Color {
	raw, ok := s.get(ctx, KeyTextColor)
	if !ok {
		return DefaultTextColor
	}
	c, err := ParseColor(raw)
	if err != nil {
		s.logger.Warn("Invalid colour setting, using default", "key", KeyTextColor, "value", raw, "error", err)
		return DefaultTextColor
	}
	return c
}

// AnimationDuration is stored in milliseconds
func (s *Settings) AnimationDuration(ctx context.Context) time.Duration {
	ms := s.Int(ctx, KeyAnimationDuration, DefaultAnimationDurationMs)
	return time.Duration(ms) * time.Millisecond
}

func (s *Settings) ManualAdjust(ctx context.Context) int {
	return s.Int(ctx, KeyManualAdjust, 0)
}

// ResetManualAdjust puts the adjust field back to 0 so it applies once
func (s *Settings) ResetManualAdjust(ctx context.Context) error {
	return s.SetInt(ctx, KeyManualAdjust, 0)
}

// Counter loads a persisted kill count. Absent means 0.
func (s *Settings) Counter(ctx context.Context, key string) int {
	n := s.Int(ctx, key, 0)
	if n < 0 {
		return 0
	}
	return n
}

func (s *Settings) SetCounter(ctx context.Context, key string, n int) error {
	return s.SetInt(ctx, key, n)
}

// Generic accessors

func (s *Settings) String(ctx context.Context, key, def string) string {
	raw, ok := s.get(ctx, key)
	if !ok {
		return def
	}
	return raw
}

func (s *Settings) Bool(ctx context.Context, key string, def bool) bool {
	raw, ok := s.get(ctx, key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("Invalid bool setting, using default", "key", key, "value", raw, "error", err)
		return def
	}
	return b
}

func (s *Settings) Int(ctx context.Context, key string, def int) int {
	raw, ok := s.get(ctx, key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.logger.Warn("Invalid int setting, using default", "key", key, "value", raw, "error", err)
		return def
	}
	return n
}

func (s *Settings) SetString(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.group, key, value)
}

func (s *Settings) SetBool(ctx context.Context, key string, value bool) error {
	return s.store.Set(ctx, s.group, key, strconv.FormatBool(value))
}

func (s *Settings) SetInt(ctx context.Context, key string, value int) error {
	return s.store.Set(ctx, s.group, key, strconv.Itoa(value))
}

func (s *Settings) SetColor(ctx context.Context, key string, value Color) error {
	return s.store.Set(ctx, s.group, key, value.Hex())
}

func (s *Settings) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Get(ctx, s.group, key)
	if err != nil {
		s.logger.Error("Failed to read setting", "group", s.group, "key", key, "error", err)
		return "", false
	}
	return raw, ok
}
