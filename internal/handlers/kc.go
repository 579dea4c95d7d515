package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/mobkc/pkg/tracker"
)

// SnapshotSource is the read side of a tracker
type SnapshotSource interface {
	Snapshot() tracker.Snapshot
}

// KCResponse is the JSON form of the tracker readout
type KCResponse struct {
	Tracking        bool       `json:"tracking"`
	Name            string     `json:"name,omitempty"`
	Count           int        `json:"count"`
	LastIncrementAt *time.Time `json:"last_increment_at,omitempty"`
}

// KCHandler serves the current kill count read-only
type KCHandler struct {
	source SnapshotSource
	logger *slog.Logger
}

func NewKCHandler(source SnapshotSource, logger *slog.Logger) *KCHandler {
	return &KCHandler{source: source, logger: logger}
}

func (h *KCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := h.source.Snapshot()
	resp := KCResponse{
		Tracking: snap.Tracking(),
		Name:     snap.Name,
		Count:    snap.Count,
	}
	if snap.Incremented() {
		at := snap.LastIncrementAt
		resp.LastIncrementAt = &at
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Error encoding kill count response", "error", err)
	}
}
