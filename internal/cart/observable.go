package cart

import "sync"

// Observable is a concurrency-safe value holder with fan-out. Subscribers
// get the latest value; slow subscribers are coalesced (intermediate values
// may be skipped), they never block Set.
type Observable[T any] struct {
	mu   sync.RWMutex
	v    T
	subs map[int]chan T
	next int
}

func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		v:    initial,
		subs: make(map[int]chan T),
	}
}

func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.v = v
	for _, ch := range o.subs {
		select {
		case ch <- v:
		default:
			// Drop the stale value so the channel always holds the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// Watch returns a channel delivering value updates and a cancel func that
// unsubscribes and closes the channel. The current value is delivered first.
func (o *Observable[T]) Watch() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	ch := make(chan T, 1)
	ch <- o.v
	id := o.next
	o.next++
	o.subs[id] = ch

	cancel := func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if sub, ok := o.subs[id]; ok {
			delete(o.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
