package track

import "sync"

// EventWithArg is a multi-cast event carrying one argument. Listeners run
// synchronously on the goroutine that invokes the event.
type EventWithArg[T any] struct {
	mu        sync.Mutex
	listeners []func(T)
}

// AddListener registers callback. A nil callback is ignored.
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = nil
}

// Invoke calls all listeners in registration order. Listeners may add
// further listeners; those run from the next Invoke on.
func (e *EventWithArg[T]) Invoke(arg T) {
	e.mu.Lock()
	listeners := e.listeners
	e.mu.Unlock()
	for _, listener := range listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
