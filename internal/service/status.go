package service

import (
	"sync"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

// StatusBroadcaster fans sync phase transitions out to observers. Each
// subscription buffers exactly one event: when the observer lags, the stale
// event is dropped and replaced, so a reader always wakes up to the newest
// status and never chews through a backlog.
type StatusBroadcaster struct {
	mu   sync.Mutex
	subs map[int]chan models.SyncStatus
	next int
}

func NewStatusBroadcaster() *StatusBroadcaster {
	return &StatusBroadcaster{subs: make(map[int]chan models.SyncStatus)}
}

// Subscribe registers an observer. The returned cancel function removes the
// subscription and closes the channel; it is safe to call more than once.
func (b *StatusBroadcaster) Subscribe() (<-chan models.SyncStatus, func()) {
	ch := make(chan models.SyncStatus, 1)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers the status to every subscriber, overwriting any event a
// subscriber has not consumed yet. Never blocks.
func (b *StatusBroadcaster) Publish(phase models.SyncPhase, reason string, report models.SyncReport) {
	st := models.SyncStatus{Phase: phase, Reason: reason, Report: report, At: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}
