package proxy

// Next resumes the rest of an advice chain. Each interceptor must call it
// exactly once: skipping it short-circuits the call, a second invocation
// panics with *InvalidStateError.
type Next func() error

// Interceptor runs before/after logic around one call. After-logic that must
// survive a failing target belongs in a defer, so it runs on the unwind path
// of panics as well as error returns.
//
// The chain performs no filtering; advice that only applies to marked
// operations queries the marker registry itself.
type Interceptor func(ctx *Context, next Next) error

// Chain is an ordered interceptor sequence terminated by Context.Proceed.
// It is built once per stand-in, immutable afterwards, and may be invoked
// concurrently as long as every call gets its own Context.
type Chain struct {
	entries []Interceptor
}

func NewChain(entries ...Interceptor) *Chain {
	chain := &Chain{entries: make([]Interceptor, len(entries))}
	copy(chain.entries, entries)
	return chain
}

func (c *Chain) Len() int {
	return len(c.entries)
}

// Invoke walks the chain front-to-back; interceptors unwind in reverse
// order. The terminal link proceeds to the real operation.
func (c *Chain) Invoke(ctx *Context) error {
	return c.invoke(ctx, 0)
}

func (c *Chain) invoke(ctx *Context, i int) error {
	if i == len(c.entries) {
		return ctx.Proceed()
	}

	resumed := false
	return c.entries[i](ctx, func() error {
		if resumed {
			panic(&InvalidStateError{Op: "next", Method: ctx.Method})
		}
		resumed = true
		return c.invoke(ctx, i+1)
	})
}
