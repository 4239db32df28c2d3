// Package lock provides a goroutine-reentrant mutex. The holder is tracked
// by goroutine id, so nested acquisitions from the holding goroutine succeed
// and each one must be paired with an Unlock.
package lock

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	run "github.com/3636adesh/spring-proxies/runtime"
)

type ReentrantLock struct {
	waiters int64

	// holder goroutine id: -1 reentrancy disabled, 0 unheld, > 0 held
	holder,
	depth int64

	mutex sync.Mutex
}

func NewReentrantLock(reentrant bool) *ReentrantLock {
	var holder int64 = -1
	if reentrant {
		holder = 0
	}

	return &ReentrantLock{
		holder: holder,
	}
}

// Lock acquires the lock, spinning until the context expires. It reports
// whether the lock was obtained. A nil context applies a 10s cap.
func (l *ReentrantLock) Lock(ctx context.Context) bool {
	if ctx == nil {
		timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ctx = timeout
	}

	atomic.AddInt64(&l.waiters, 1)
	for {
		select {
		case <-ctx.Done():
			atomic.AddInt64(&l.waiters, -1)
			return false
		default:
			if l.tryLock() {
				return true
			}
			runtime.Gosched()
		}
	}
}

func (l *ReentrantLock) Unlock() {
	atomic.AddInt64(&l.waiters, -1)
	l.unlock()
}

func (l *ReentrantLock) IsIdle() bool {
	return atomic.LoadInt64(&l.waiters) < 1
}

func (l *ReentrantLock) tryLock() (ok bool) {
	ok = l.mutex.TryLock()
	if ok {
		if l.holder >= 0 {
			atomic.StoreInt64(&l.holder, run.GetCurrentGoroutineID())
		}
		l.depth++
		return
	}

	if l.holder >= 0 {
		gid := run.GetCurrentGoroutineID()
		if atomic.CompareAndSwapInt64(&l.holder, gid, gid) {
			l.depth++
			return true
		}
	}
	return
}

func (l *ReentrantLock) unlock() {
	if l.holder >= 0 {
		l.depth--
		if l.depth <= 0 {
			atomic.StoreInt64(&l.holder, 0)
			l.mutex.Unlock()
		}
		return
	}

	l.mutex.Unlock()
}
