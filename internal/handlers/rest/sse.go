package rest

import (
	"sync"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
)

// Event is one server-sent update about a battle
type Event struct {
	Type     string         `json:"type"`
	BattleID string         `json:"battleId"`
	Battle   *battle.Battle `json:"battle,omitempty"`
}

type subscriber struct {
	ch       chan Event
	battleID string // empty subscribes to every battle
}

// Hub fans battle updates out to SSE subscribers. Slow subscribers drop
// events rather than block publishers.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers interest in a battle's events; an empty battleID
// receives everything. The returned cancel func must be called when done.
func (h *Hub) Subscribe(battleID string) (<-chan Event, func()) {
	sub := &subscriber{
		ch:       make(chan Event, 16),
		battleID: battleID,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, sub)
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers an event to every matching subscriber
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if sub.battleID != "" && sub.battleID != event.BattleID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}
