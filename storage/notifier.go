package storage

import "sync"

// LogoutNotifier broadcasts logout events to explicitly registered
// observers, replacing ambient global state with channels each in-memory
// state holder owns. Sends never block: an observer that has not drained its
// previous signal simply keeps the one already pending.
type LogoutNotifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func (n *LogoutNotifier) subscribe() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan struct{}, 1)
	n.subs = append(n.subs, ch)
	return ch
}

func (n *LogoutNotifier) unsubscribe(ch <-chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, sub := range n.subs {
		if sub == ch {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

func (n *LogoutNotifier) notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
}
