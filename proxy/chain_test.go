package proxy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trace(log *[]string, name string) Interceptor {
	return func(ctx *Context, next Next) error {
		*log = append(*log, name+"-in")
		defer func() { *log = append(*log, name+"-out") }()
		return next()
	}
}

func TestChainOrdering(t *testing.T) {
	var log []string
	chain := NewChain(trace(&log, "a"), trace(&log, "b"))

	ctx := &Context{Method: "Op", Do: func() { log = append(log, "real") }}
	require.NoError(t, chain.Invoke(ctx))

	assert.Equal(t, []string{"a-in", "b-in", "real", "b-out", "a-out"}, log)
}

func TestChainAfterLogicRunsOnFailure(t *testing.T) {
	var log []string
	failure := errors.New("broken")
	chain := NewChain(trace(&log, "a"), trace(&log, "b"))

	ctx := &Context{Method: "Op", Out: make([]any, 1)}
	ctx.Do = func() {
		log = append(log, "real")
		ctx.Out[0] = failure
	}

	assert.Same(t, failure, chain.Invoke(ctx))
	assert.Equal(t, []string{"a-in", "b-in", "real", "b-out", "a-out"}, log)
}

func TestChainAfterLogicRunsOnPanic(t *testing.T) {
	var log []string
	chain := NewChain(trace(&log, "a"))

	ctx := &Context{Method: "Op", Do: func() { panic("blown") }}
	assert.PanicsWithValue(t, "blown", func() { _ = chain.Invoke(ctx) })
	assert.Equal(t, []string{"a-in", "a-out"}, log)
}

func TestChainShortCircuit(t *testing.T) {
	ran := false
	chain := NewChain(func(ctx *Context, next Next) error {
		return nil // never proceeds
	})

	ctx := &Context{Method: "Op", Do: func() { ran = true }}
	require.NoError(t, chain.Invoke(ctx))
	assert.False(t, ran)
	assert.False(t, ctx.Proceeded())
}

func TestChainDoubleNextPanics(t *testing.T) {
	chain := NewChain(func(ctx *Context, next Next) error {
		_ = next()
		return next()
	})

	ctx := &Context{Method: "Op", Do: func() {}}
	defer func() {
		var state *InvalidStateError
		require.ErrorAs(t, recover().(error), &state)
		assert.Equal(t, "next", state.Op)
	}()
	_ = chain.Invoke(ctx)
	t.Fatal("expected panic")
}

func TestChainEmptyProceeds(t *testing.T) {
	ran := false
	chain := NewChain()
	require.NoError(t, chain.Invoke(&Context{Method: "Op", Do: func() { ran = true }}))
	assert.True(t, ran)
	assert.Zero(t, chain.Len())
}

func TestChainImmutableAfterBuild(t *testing.T) {
	entries := []Interceptor{trace(new([]string), "a")}
	chain := NewChain(entries...)

	entries[0] = func(ctx *Context, next Next) error { panic("mutated") }
	assert.NotPanics(t, func() {
		_ = chain.Invoke(&Context{Method: "Op", Do: func() {}})
	})
}
