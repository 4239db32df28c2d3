// Package errors bridges error returns into panic-based unwinding for
// bootstrap code: a failed Try panics past the remaining steps and Throw
// rethrows at the top of the scope.
package errors

import "io"

type Context struct {
	err   error
	catch func(err error) bool
}

func (ctx *Context) Error() error {
	return ctx.err
}

func (ctx *Context) Throw() {
	err := recover()
	if err == nil {
		return
	}

	if ctx.err == nil {
		panic(err)
	}

	panic(ctx.err)
}

func New(catch func(err error) bool) *Context {
	return &Context{
		err:   nil,
		catch: catch,
	}
}

func panicTo(ctx *Context) {
	if ctx.err == nil {
		return
	}

	if ctx.catch != nil {
		if ctx.catch(ctx.err) {
			return
		}
	}

	panic(io.EOF)
}

func Try(ctx *Context, exec func() error) {
	ctx.err = exec()
	panicTo(ctx)
}

func Try1[T any](ctx *Context, exec func() (T, error)) (t T) {
	t, ctx.err = exec()
	panicTo(ctx)
	return
}

func Try2[T, M any](ctx *Context, exec func() (T, M, error)) (t T, m M) {
	t, m, ctx.err = exec()
	panicTo(ctx)
	return
}
