package proxy

import "fmt"

// UnsupportedTargetError reports that a proxy strategy was asked to wrap a
// target it has no stand-in for.
type UnsupportedTargetError struct {
	Target   string
	Strategy string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("no %s stand-in registered for %s", e.Strategy, e.Target)
}

// InvalidStateError reports a protocol violation on an in-flight call:
// Proceed invoked twice on one Context, or next invoked twice by a single
// interceptor.
type InvalidStateError struct {
	Op     string
	Method string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s called more than once for %s", e.Op, e.Method)
}

// TargetInvocationError wraps a mechanical failure of the reflective call
// path (missing method, argument mismatch). Failures returned by the real
// operation itself are never wrapped; they propagate as-is.
type TargetInvocationError struct {
	Method string
	Cause  error
}

func (e *TargetInvocationError) Error() string {
	return fmt.Sprintf("invoking %s: %v", e.Method, e.Cause)
}

func (e *TargetInvocationError) Unwrap() error {
	return e.Cause
}
