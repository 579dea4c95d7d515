package metrics

import (
	"context"

	"github.com/jwebster45206/mobkc/pkg/tracker"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder turns tracker changes into Prometheus series
type Recorder struct {
	kills       *prometheus.CounterVec
	switches    prometheus.Counter
	adjustments *prometheus.CounterVec
	current     prometheus.Gauge
}

// Ensure Recorder implements tracker.Notifier
var _ tracker.Notifier = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobkc_kills_total",
			Help: "Kills counted for the tracked NPC, by NPC name",
		}, []string{"npc"}),
		switches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mobkc_target_switches_total",
			Help: "Number of times the tracked NPC changed",
		}),
		adjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mobkc_manual_adjustments_total",
			Help: "Manual kill count adjustments, by direction",
		}, []string{"direction"}),
		current: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mobkc_tracked_kill_count",
			Help: "Kill count of the currently tracked NPC",
		}),
	}
	reg.MustRegister(r.kills, r.switches, r.adjustments, r.current)
	return r
}

func (r *Recorder) Notify(ctx context.Context, c tracker.Change) error {
	switch c.Kind {
	case tracker.ChangeKillRecorded:
		r.kills.WithLabelValues(c.Name).Inc()
	case tracker.ChangeTargetSwitched:
		r.switches.Inc()
	case tracker.ChangeCountAdjusted:
		direction := "up"
		if c.Delta < 0 {
			direction = "down"
		}
		r.adjustments.WithLabelValues(direction).Inc()
	case tracker.ChangeTargetCleared:
		r.current.Set(0)
		return nil
	}
	r.current.Set(float64(c.Count))
	return nil
}
