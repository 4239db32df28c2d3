package proxy

import (
	"fmt"
	"reflect"
)

// Context carries one in-flight call through an advice chain: the original
// target, the operation name, the argument list and the result slots. A
// Context is created fresh per call and never reused; Proceed delegates to
// the real operation exactly once.
//
// Stand-in adapters set Do to a closure performing the real, statically
// typed call and filling Out. When Do is nil, Proceed falls back to calling
// Method on Receiver through reflection.
type Context struct {
	In,
	Out []any
	Method   string
	Receiver any
	Do       func()

	proceeded bool
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Proceed invokes the real operation on the target with the captured
// arguments. A second call is a programming error and returns
// *InvalidStateError without re-invoking. A failure raised by the real
// operation propagates unchanged.
func (ctx *Context) Proceed() error {
	if ctx.proceeded {
		return &InvalidStateError{Op: "Proceed", Method: ctx.Method}
	}
	ctx.proceeded = true

	if ctx.Do != nil {
		ctx.Do()
		return ctx.trailingError()
	}
	return ctx.reflectCall()
}

// The real operation's failure travels in the last result slot; Proceed
// surfaces it so every interceptor sees the same error the caller will.
func (ctx *Context) trailingError() error {
	if n := len(ctx.Out); n > 0 {
		if e, ok := ctx.Out[n-1].(error); ok {
			return e
		}
	}
	return nil
}

// Proceeded reports whether the real operation has been reached.
func (ctx *Context) Proceeded() bool {
	return ctx.proceeded
}

// Fork returns a fresh Context over the same target, operation and
// arguments. Retry-style advice resubmits through a fork; the original
// Context stays spent.
func (ctx *Context) Fork() *Context {
	return &Context{
		In:       ctx.In,
		Out:      ctx.Out,
		Method:   ctx.Method,
		Receiver: ctx.Receiver,
		Do:       ctx.Do,
	}
}

func (ctx *Context) reflectCall() error {
	rv := reflect.ValueOf(ctx.Receiver)
	if !rv.IsValid() {
		return &TargetInvocationError{Method: ctx.Method, Cause: fmt.Errorf("nil receiver")}
	}

	method := rv.MethodByName(ctx.Method)
	if !method.IsValid() {
		return &TargetInvocationError{Method: ctx.Method, Cause: fmt.Errorf("no method %q on %T", ctx.Method, ctx.Receiver)}
	}

	mt := method.Type()
	if mt.IsVariadic() || mt.NumIn() != len(ctx.In) {
		return &TargetInvocationError{Method: ctx.Method, Cause: fmt.Errorf("want %d arguments, got %d", mt.NumIn(), len(ctx.In))}
	}

	in := make([]reflect.Value, len(ctx.In))
	for i, arg := range ctx.In {
		if arg == nil {
			in[i] = reflect.Zero(mt.In(i))
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}

	out := method.Call(in)
	if len(ctx.Out) < len(out) {
		ctx.Out = make([]any, len(out))
	}
	for i, value := range out {
		ctx.Out[i] = value.Interface()
	}

	if n := mt.NumOut(); n > 0 && mt.Out(n-1) == errType {
		if e := out[n-1].Interface(); e != nil {
			return e.(error)
		}
	}
	return nil
}
