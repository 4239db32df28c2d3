package runtime

import "sync"

// ThreadLocal keeps one value per goroutine, keyed by goroutine id. Callers
// own cleanup: Remove must run before the goroutine exits or the slot leaks.
type ThreadLocal[T any] struct {
	slots sync.Map
	init  func() T
}

func NewThreadLocal[T any](init func() T) *ThreadLocal[T] {
	return &ThreadLocal[T]{init: init}
}

// Load returns the current goroutine's value, creating it on first use.
func (tl *ThreadLocal[T]) Load() T {
	gid := GetCurrentGoroutineID()
	if value, ok := tl.slots.Load(gid); ok {
		return value.(T)
	}

	var value T
	if tl.init != nil {
		value = tl.init()
	}
	tl.slots.Store(gid, value)
	return value
}

func (tl *ThreadLocal[T]) Store(value T) {
	tl.slots.Store(GetCurrentGoroutineID(), value)
}

// Ex reports whether the current goroutine already owns a slot; with init
// set it creates one as a side effect.
func (tl *ThreadLocal[T]) Ex(init bool) bool {
	_, ok := tl.slots.Load(GetCurrentGoroutineID())
	if !ok && init {
		tl.Load()
	}
	return ok
}

func (tl *ThreadLocal[T]) Remove() {
	tl.slots.Delete(GetCurrentGoroutineID())
}
