package duoledger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

// Notifier fans out an unstructured "something changed" signal to every
// subscriber on the same device. Delivery is best effort and duplicates are
// acceptable: handlers must be idempotent re-reads of the store.
//
// Subscribers in the same process are invoked directly. Other processes
// sharing the data directory observe the change through a marker file that
// Notify rewrites on every signal; Watch polls it.
type Notifier struct {
	marker string

	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewNotifier creates a notifier using the given marker file for
// cross-process signaling.
func NewNotifier(marker string) *Notifier {
	return &Notifier{marker: marker, subs: make(map[int]func())}
}

// Subscribe registers a change handler and returns its unsubscribe function.
func (n *Notifier) Subscribe(handler func()) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = handler
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify broadcasts a change signal: local subscribers are invoked
// immediately, and the marker file is rewritten for other processes.
// The signal carries no payload beyond "re-read the store".
func (n *Notifier) Notify() {
	n.fanOut()

	// The marker content only needs to differ from the previous write.
	stamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	if err := os.WriteFile(n.marker, []byte(stamp), 0644); err != nil {
		// Cross-process signaling is best effort; local delivery already happened.
		log.Printf("could not write change marker %q: %v", n.marker, err)
	}
}

func (n *Notifier) fanOut() {
	n.mu.Lock()
	handlers := make([]func(), 0, len(n.subs))
	for _, h := range n.subs {
		handlers = append(handlers, h)
	}
	n.mu.Unlock()
	for _, h := range handlers {
		h()
	}
}

// Watch polls the marker file and invokes local subscribers whenever another
// process signaled a change. It blocks until the context is done.
func (n *Notifier) Watch(ctx context.Context, every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("invalid watch interval %v", every)
	}
	last, _ := os.ReadFile(n.marker)

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			current, err := os.ReadFile(n.marker)
			if err != nil {
				continue // marker not written yet
			}
			if string(current) != string(last) {
				last = current
				n.fanOut()
			}
		}
	}
}
