package runtime

import "runtime"

// CallerFrame walks up the caller stack and returns the first frame accepted
// by matched, or nil when the walk is exhausted.
func CallerFrame(matched func(frame runtime.Frame) bool) *runtime.Frame {
	pcs := make([]uintptr, 16)
	depth := runtime.Callers(2, pcs)
	if depth == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:depth])
	for {
		frame, more := frames.Next()
		if matched(frame) {
			return &frame
		}
		if !more {
			return nil
		}
	}
}
