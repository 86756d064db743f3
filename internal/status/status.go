// Package status shares the session's latest state with peripheral readers
// such as the status server and the tray.
package status

import (
	"sync"
	"time"
)

// Snapshot is the session state after one loop iteration.
type Snapshot struct {
	SessionID   string    `json:"session_id"`
	Frame       uint64    `json:"frame"`
	Gesture     string    `json:"gesture"`
	HoldFrames  int       `json:"hold_frames"`
	Progress    string    `json:"progress"`
	Timer       string    `json:"timer"`
	TimerColor  string    `json:"timer_color"`
	Phase       string    `json:"phase"`
	LastCommand string    `json:"last_command,omitempty"`
	Connected   bool      `json:"device_connected"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Board holds the latest Snapshot and fans it out to subscribers. Slow
// subscribers only ever see the newest snapshot.
type Board struct {
	mu     sync.RWMutex
	latest Snapshot
	subs   map[chan Snapshot]struct{}
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{subs: make(map[chan Snapshot]struct{})}
}

// Publish replaces the latest snapshot and notifies subscribers.
func (b *Board) Publish(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = s
	for ch := range b.subs {
		select {
		case ch <- s:
		default:
			// drop the stale value and retry once
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

// Latest returns the most recent snapshot.
func (b *Board) Latest() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// Subscribe returns a channel receiving new snapshots and a cancel func
// that must be called to release it.
func (b *Board) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Board) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
