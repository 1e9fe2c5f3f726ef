package sse

import (
	"sync"
)

// Event represents an SSE event pushed to kiosk terminals of a branch
type Event struct {
	BranchID string
	Event    string
	Data     interface{}
}

// Hub manages SSE subscribers and event broadcasting. Subscribers are keyed
// by branch: every kiosk terminal of a branch receives the same refresh
// events.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a branch and returns the event
// channel and cleanup function
func (h *Hub) Subscribe(branchID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[branchID] == nil {
		h.subscribers[branchID] = make(map[chan Event]struct{})
	}
	h.subscribers[branchID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[branchID], ch)
		close(ch)
		if len(h.subscribers[branchID]) == 0 {
			delete(h.subscribers, branchID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a branch. Slow subscribers
// with a full buffer are skipped rather than blocking the publisher.
func (h *Hub) Publish(branchID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[branchID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for a branch
func (h *Hub) SubscriberCount(branchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[branchID])
}
