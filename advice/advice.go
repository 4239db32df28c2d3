// Package advice ships stock interceptors for the usual cross-cutting
// concerns. Every marker-gated interceptor queries the marker registry
// itself; the chain forwards all calls unfiltered.
package advice

import (
	"fmt"
	"io"
	"strings"

	"github.com/3636adesh/spring-proxies/lock"
	"github.com/3636adesh/spring-proxies/marker"
	"github.com/3636adesh/spring-proxies/proxy"
)

// Transactional brackets marked operations with tx-start/tx-end. The tx-end
// side runs on every exit path, including a failing target.
func Transactional(w io.Writer) proxy.Interceptor {
	return func(ctx *proxy.Context, next proxy.Next) error {
		if !marker.IsMarked(ctx.Receiver, ctx.Method) {
			return next()
		}

		fmt.Fprintln(w, "tx-start")
		defer fmt.Fprintln(w, "tx-end")
		return next()
	}
}

// Tracing prints before/after lines around marked operations.
func Tracing(w io.Writer) proxy.Interceptor {
	return func(ctx *proxy.Context, next proxy.Next) error {
		if !marker.IsMarked(ctx.Receiver, ctx.Method) {
			return next()
		}

		op := lowerInitial(ctx.Method)
		fmt.Fprintln(w, "before "+op)
		defer fmt.Fprintln(w, "after "+op)
		return next()
	}
}

// Retry resubmits a failed call up to attempts times in total. Resubmission
// goes through a fresh fork of the invocation context straight to the real
// operation; interceptors downstream of Retry do not rerun.
func Retry(attempts int) proxy.Interceptor {
	return func(ctx *proxy.Context, next proxy.Next) (err error) {
		if err = next(); err == nil {
			return
		}

		for i := 1; i < attempts; i++ {
			if err = ctx.Fork().Proceed(); err == nil {
				return
			}
		}
		return
	}
}

// Synchronized serializes marked operations through one reentrant lock, so a
// marked operation calling back into another marked operation on the same
// goroutine does not deadlock.
func Synchronized() proxy.Interceptor {
	mu := lock.NewReentrantLock(true)
	return func(ctx *proxy.Context, next proxy.Next) error {
		if !marker.IsMarked(ctx.Receiver, ctx.Method) {
			return next()
		}

		if !mu.Lock(nil) {
			return fmt.Errorf("lock timed out for %s", ctx.Method)
		}
		defer mu.Unlock()
		return next()
	}
}

func lowerInitial(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
