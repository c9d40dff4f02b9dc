// Package notification delivers account activity messages to every
// registered sink in registration order.
package notification

import (
	"banking-engine/internal/infrastructure/monitoring"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type Sink interface {
	Name() string
	Update(ctx context.Context, message string) error
}

type Entry struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

func (e Entry) String() string {
	return fmt.Sprintf("Device: %d %s", e.Position, e.Name)
}

// Hub is shared by every account of a process. The lock is held for the whole
// of Register, Unregister and Broadcast, so a sink must not call back into the
// hub from Update.
type Hub struct {
	mu     sync.Mutex
	sinks  []Sink
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Hub{logger: logger.With("component", "NotificationHub")}
}

func (h *Hub) Register(s Sink) {
	if s == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks = append(h.sinks, s)
	h.logger.Debug("Sink registered", "sink", s.Name(), "count", len(h.sinks))
}

// Unregister removes the first registration of s and reports whether one was found.
func (h *Hub) Unregister(s Sink) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, registered := range h.sinks {
		if registered == s {
			h.sinks = append(h.sinks[:i], h.sinks[i+1:]...)
			h.logger.Debug("Sink unregistered", "sink", s.Name(), "count", len(h.sinks))
			return true
		}
	}
	return false
}

func (h *Hub) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	entries := make([]Entry, 0, len(h.sinks))
	for i, s := range h.sinks {
		entries = append(entries, Entry{Position: i + 1, Name: s.Name()})
	}
	return entries
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sinks)
}

func (h *Hub) Broadcast(ctx context.Context, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sinks {
		if err := s.Update(ctx, message); err != nil {
			h.logger.WarnContext(ctx, "Failed to deliver notification", "sink", s.Name(), slog.Any("error", err))
			monitoring.RecordDelivery(s.Name(), "failure")
			continue
		}
		monitoring.RecordDelivery(s.Name(), "success")
	}
}
